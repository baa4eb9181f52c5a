package worktime

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPattern is the display pattern used by the reporting forms.
const DefaultPattern = "YYYY-MM-DD HH:mm"

// FormatDateTime renders t by substituting the tokens YYYY, MM, DD, HH, mm and
// ss in pattern with zero-padded components. An empty pattern means
// DefaultPattern. The zero time renders as "".
//
// Each token is replaced once, first occurrence only, in the order listed
// above. Substituted digits are not protected: a pattern whose literal text
// still contains a later token after earlier substitutions will have that
// text replaced too.
func FormatDateTime(t time.Time, pattern string) string {
	if t.IsZero() {
		return ""
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	out := pattern
	out = strings.Replace(out, "YYYY", fmt.Sprintf("%d", t.Year()), 1)
	out = strings.Replace(out, "MM", fmt.Sprintf("%02d", int(t.Month())), 1)
	out = strings.Replace(out, "DD", fmt.Sprintf("%02d", t.Day()), 1)
	out = strings.Replace(out, "HH", fmt.Sprintf("%02d", t.Hour()), 1)
	out = strings.Replace(out, "mm", fmt.Sprintf("%02d", t.Minute()), 1)
	out = strings.Replace(out, "ss", fmt.Sprintf("%02d", t.Second()), 1)
	return out
}

var parseLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime parses "YYYY-MM-DD HH:mm[:ss]" (or RFC3339) in loc. A nil loc
// means time.Local.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q: use YYYY-MM-DD HH:mm[:ss]", s)
}
