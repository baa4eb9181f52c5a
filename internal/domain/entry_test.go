package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func validEntry() *WorkTimeEntry {
	return &WorkTimeEntry{
		ID:        "e1",
		Kind:      KindAuxiliary,
		Status:    EntryPending,
		CraftCode: "C01",
		BeginAt:   time.Date(2025, 6, 15, 11, 30, 0, 0, time.UTC),
		EndAt:     time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
	}
}

func TestRecompute(t *testing.T) {
	e := validEntry()
	e.Recompute()
	assert.Equal(t, 60, e.LaborMin)

	e.EndAt = e.BeginAt
	e.Recompute()
	assert.Equal(t, 0, e.LaborMin)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(e *WorkTimeEntry)
		wantErr string
	}{
		{"valid", func(e *WorkTimeEntry) {}, ""},
		{"bad kind", func(e *WorkTimeEntry) { e.Kind = "overtime" }, "invalid entry kind"},
		{"missing begin", func(e *WorkTimeEntry) { e.BeginAt = time.Time{} }, "required"},
		{"inverted", func(e *WorkTimeEntry) { e.EndAt = e.BeginAt.Add(-time.Minute) }, "must be after"},
		{"missing craft", func(e *WorkTimeEntry) { e.CraftCode = "" }, "craft"},
		{"qiandiao without order", func(e *WorkTimeEntry) { e.Kind = KindQiandiao }, "order"},
		{"qiandiao with order", func(e *WorkTimeEntry) { e.Kind = KindQiandiao; e.OrderID = "O1" }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEntry()
			tc.mutate(e)
			err := e.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_ZeroLaborAllowed(t *testing.T) {
	e := validEntry()
	e.BeginAt = time.Date(2025, 6, 15, 17, 30, 0, 0, time.UTC)
	e.EndAt = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	e.Recompute()
	assert.Equal(t, 0, e.LaborMin)
	assert.NoError(t, e.Validate())
}

func TestMarkSubmitted(t *testing.T) {
	e := validEntry()
	e.LastError = "boom"
	require.NoError(t, e.MarkSubmitted(testNow))
	assert.Equal(t, EntrySubmitted, e.Status)
	require.NotNil(t, e.SubmittedAt)
	assert.Equal(t, testNow, *e.SubmittedAt)
	assert.Empty(t, e.LastError)
	assert.Equal(t, 1, e.Attempts)
	assert.False(t, e.Submittable())

	err := e.MarkSubmitted(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already submitted")
}

func TestMarkFailed(t *testing.T) {
	e := validEntry()
	e.MarkFailed(errors.New("backend rejected"), testNow)
	assert.Equal(t, EntryFailed, e.Status)
	assert.Equal(t, "backend rejected", e.LastError)
	assert.Equal(t, testNow, e.UpdatedAt)
	assert.Equal(t, 1, e.Attempts)
	assert.True(t, e.Submittable())
}

func TestDay(t *testing.T) {
	assert.Equal(t, "2025-06-15", validEntry().Day())
}
