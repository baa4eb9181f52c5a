package mes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SaveOtherBackList posts auxiliary man-time rows.
func (c *httpClient) SaveOtherBackList(ctx context.Context, recs []BackRecord) error {
	return c.postList(ctx, "/dgn/unitBack/saveMesOtherBackList", "mesOtherBackList", recs)
}

// WorkPieceTimeFeedback posts work-piece man-time rows.
func (c *httpClient) WorkPieceTimeFeedback(ctx context.Context, recs []BackRecord) error {
	return c.postList(ctx, "/dgn/unitBack/workPieceTimeFeedback", "unitBackList", recs)
}

// SubmitQiandiaoFeedback posts a single qiandiao row, wrapped in a
// one-element list.
func (c *httpClient) SubmitQiandiaoFeedback(ctx context.Context, rec BackRecord) error {
	return c.postList(ctx, "/dgn/unitBack/saveUnitBackListForQT", "unitBackList", []BackRecord{rec})
}

func (c *httpClient) SubmitQualityReport(ctx context.Context, p QualityPayload) error {
	_, err := c.call(ctx, request{method: http.MethodPost, path: "/quality/submit", body: p})
	return err
}

// postList sends recs as a JSON array inside a single urlencoded form field.
func (c *httpClient) postList(ctx context.Context, path, field string, recs []BackRecord) error {
	if recs == nil {
		recs = []BackRecord{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", field, err)
	}
	_, err = c.call(ctx, request{
		method: http.MethodPost,
		path:   path,
		form:   url.Values{field: {string(data)}},
	})
	return err
}
