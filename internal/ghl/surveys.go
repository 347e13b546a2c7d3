package ghl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Survey is a published survey form.
type Survey struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LocationID string `json:"locationId,omitempty"`
}

// SurveySubmission is one completed survey response.
type SurveySubmission struct {
	ID         string         `json:"id"`
	ContactID  string         `json:"contactId,omitempty"`
	SurveyID   string         `json:"surveyId,omitempty"`
	CreatedAt  string         `json:"createdAt,omitempty"`
	Name       string         `json:"name,omitempty"`
	Email      string         `json:"email,omitempty"`
	SurveyData map[string]any `json:"others,omitempty"`
}

// GetSurveys lists a location's surveys.
func (c *Client) GetSurveys(ctx context.Context, locationID string, limit, skip int) ([]Survey, error) {
	q := listQuery(limit, skip, 10)
	q.Set("locationId", c.defaultLocationID(locationID))
	data, err := c.do(ctx, http.MethodGet, "/surveys/", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Surveys []Survey `json:"surveys"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Surveys, nil
}

// GetSurveySubmissionsParams filters a submission listing.
type GetSurveySubmissionsParams struct {
	LocationID string
	SurveyID   string
	Query      string
	StartAt    string // YYYY-MM-DD
	EndAt      string
	Limit      int
	Page       int
}

// GetSurveySubmissions lists survey responses.
func (c *Client) GetSurveySubmissions(ctx context.Context, p GetSurveySubmissionsParams) ([]SurveySubmission, int, error) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(p.LocationID))
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.SurveyID != "" {
		q.Set("surveyId", p.SurveyID)
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.StartAt != "" {
		q.Set("startAt", p.StartAt)
	}
	if p.EndAt != "" {
		q.Set("endAt", p.EndAt)
	}
	data, err := c.do(ctx, http.MethodGet, "/surveys/submissions", q, nil)
	if err != nil {
		return nil, 0, err
	}
	var envelope struct {
		Submissions []SurveySubmission `json:"submissions"`
		Meta        struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, 0, err
	}
	return envelope.Submissions, envelope.Meta.Total, nil
}
