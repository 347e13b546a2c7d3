package ghl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// EmailCampaign is a scheduled email send.
type EmailCampaign struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// EmailTemplate is a builder template.
type EmailTemplate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// GetEmailCampaigns lists a location's email campaigns filtered by status.
func (c *Client) GetEmailCampaigns(ctx context.Context, locationID, status string, limit, offset int) ([]EmailCampaign, error) {
	if limit <= 0 {
		limit = 10
	}
	if status == "" {
		status = "active"
	}
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	q.Set("status", status)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	data, err := c.do(ctx, http.MethodGet, "/emails/schedule", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Schedules []EmailCampaign `json:"schedules"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Schedules, nil
}

// CreateEmailTemplate creates a builder template in a location.
func (c *Client) CreateEmailTemplate(ctx context.Context, locationID, title, templateType string) (map[string]any, error) {
	if templateType == "" {
		templateType = "html"
	}
	body := map[string]any{
		"locationId": c.defaultLocationID(locationID),
		"title":      title,
		"type":       templateType,
	}
	data, err := c.do(ctx, http.MethodPost, "/emails/builder", nil, body)
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetEmailTemplates lists a location's builder templates.
func (c *Client) GetEmailTemplates(ctx context.Context, locationID string, limit, offset int) ([]EmailTemplate, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	data, err := c.do(ctx, http.MethodGet, "/emails/builder", q, nil)
	if err != nil {
		return nil, err
	}
	var templates []EmailTemplate
	if err := decode(data, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// UpdateEmailTemplate replaces a template's builder data.
func (c *Client) UpdateEmailTemplate(ctx context.Context, locationID, templateID string, dnd map[string]any, html string) error {
	body := compact(map[string]any{
		"locationId": c.defaultLocationID(locationID),
		"templateId": templateID,
		"dnd":        dnd,
		"html":       html,
	})
	body["editorType"] = "builder"
	_, err := c.do(ctx, http.MethodPost, "/emails/builder/data", nil, body)
	return err
}

// DeleteEmailTemplate removes a builder template.
func (c *Client) DeleteEmailTemplate(ctx context.Context, locationID, templateID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/emails/builder/"+c.defaultLocationID(locationID)+"/"+templateID, nil, nil)
	return err
}

// EmailVerification is the outcome of a deliverability check.
type EmailVerification struct {
	Result     string `json:"result"` // deliverable, undeliverable, do_not_send, unknown, catch_all
	Risk       string `json:"risk,omitempty"`
	Reason     any    `json:"reason,omitempty"`
	Address    string `json:"address,omitempty"`
	LeadUsable bool   `json:"leadconnectorRecomendation,omitempty"`
}

// VerifyEmail checks the deliverability of an email address. Verification is
// billed per call by the platform.
func (c *Client) VerifyEmail(ctx context.Context, locationID, email string) (*EmailVerification, error) {
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	body := map[string]any{
		"type":   "email",
		"verify": email,
	}
	data, err := c.do(ctx, http.MethodPost, "/email/verify", q, body)
	if err != nil {
		return nil, err
	}
	var result EmailVerification
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
