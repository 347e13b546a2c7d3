package ghl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Opportunity is a deal in a pipeline.
type Opportunity struct {
	ID            string  `json:"id"`
	Name          string  `json:"name,omitempty"`
	LocationID    string  `json:"locationId,omitempty"`
	PipelineID    string  `json:"pipelineId,omitempty"`
	StageID       string  `json:"pipelineStageId,omitempty"`
	Status        string  `json:"status,omitempty"` // open, won, lost, abandoned
	MonetaryValue float64 `json:"monetaryValue,omitempty"`
	ContactID     string  `json:"contactId,omitempty"`
	AssignedTo    string  `json:"assignedTo,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// Pipeline is a sales pipeline with its stages.
type Pipeline struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Stages []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Position int    `json:"position,omitempty"`
	} `json:"stages,omitempty"`
}

// SearchOpportunitiesParams filters an opportunity search.
type SearchOpportunitiesParams struct {
	LocationID string
	Query      string
	PipelineID string
	StageID    string
	Status     string
	ContactID  string
	Limit      int
	Page       int
}

// SearchOpportunitiesResult is a page of matching opportunities.
type SearchOpportunitiesResult struct {
	Opportunities []Opportunity `json:"opportunities"`
	Meta          struct {
		Total       int `json:"total"`
		CurrentPage int `json:"currentPage,omitempty"`
	} `json:"meta"`
}

// SearchOpportunities queries opportunities. Limit defaults to 20.
func (c *Client) SearchOpportunities(ctx context.Context, p SearchOpportunitiesParams) (*SearchOpportunitiesResult, error) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	q := url.Values{}
	q.Set("location_id", c.defaultLocationID(p.LocationID))
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.PipelineID != "" {
		q.Set("pipeline_id", p.PipelineID)
	}
	if p.StageID != "" {
		q.Set("pipeline_stage_id", p.StageID)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.ContactID != "" {
		q.Set("contact_id", p.ContactID)
	}
	data, err := c.do(ctx, http.MethodGet, "/opportunities/search", q, nil)
	if err != nil {
		return nil, err
	}
	var result SearchOpportunitiesResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPipelines lists the pipelines of a location.
func (c *Client) GetPipelines(ctx context.Context, locationID string) ([]Pipeline, error) {
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	data, err := c.do(ctx, http.MethodGet, "/opportunities/pipelines", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Pipelines []Pipeline `json:"pipelines"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Pipelines, nil
}

// GetOpportunity fetches one opportunity by ID.
func (c *Client) GetOpportunity(ctx context.Context, opportunityID string) (*Opportunity, error) {
	data, err := c.do(ctx, http.MethodGet, "/opportunities/"+opportunityID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Opportunity *Opportunity `json:"opportunity"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Opportunity, nil
}

// OpportunityParams holds the writable opportunity fields.
type OpportunityParams struct {
	LocationID    string
	Name          string
	PipelineID    string
	StageID       string
	Status        string
	ContactID     string
	MonetaryValue float64
	AssignedTo    string
}

func (p OpportunityParams) payload(locationID string) map[string]any {
	body := compact(map[string]any{
		"locationId":      locationID,
		"name":            p.Name,
		"pipelineId":      p.PipelineID,
		"pipelineStageId": p.StageID,
		"status":          p.Status,
		"contactId":       p.ContactID,
		"assignedTo":      p.AssignedTo,
	})
	if p.MonetaryValue != 0 {
		body["monetaryValue"] = p.MonetaryValue
	}
	return body
}

// CreateOpportunity creates an opportunity.
func (c *Client) CreateOpportunity(ctx context.Context, p OpportunityParams) (*Opportunity, error) {
	data, err := c.do(ctx, http.MethodPost, "/opportunities/", nil, p.payload(c.defaultLocationID(p.LocationID)))
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Opportunity *Opportunity `json:"opportunity"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Opportunity, nil
}

// UpdateOpportunity applies the non-empty fields of p to an opportunity.
func (c *Client) UpdateOpportunity(ctx context.Context, opportunityID string, p OpportunityParams) (*Opportunity, error) {
	body := p.payload("")
	delete(body, "locationId")
	data, err := c.do(ctx, http.MethodPut, "/opportunities/"+opportunityID, nil, body)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Opportunity *Opportunity `json:"opportunity"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Opportunity, nil
}

// DeleteOpportunity removes an opportunity.
func (c *Client) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/opportunities/"+opportunityID, nil, nil)
	return err
}

// UpdateOpportunityStatus sets just the status of an opportunity.
func (c *Client) UpdateOpportunityStatus(ctx context.Context, opportunityID, status string) error {
	_, err := c.do(ctx, http.MethodPut, "/opportunities/"+opportunityID+"/status", nil, map[string]any{"status": status})
	return err
}

// UpsertOpportunity creates or updates an opportunity matched by contact and
// pipeline.
func (c *Client) UpsertOpportunity(ctx context.Context, p OpportunityParams) (*Opportunity, error) {
	data, err := c.do(ctx, http.MethodPost, "/opportunities/upsert", nil, p.payload(c.defaultLocationID(p.LocationID)))
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Opportunity *Opportunity `json:"opportunity"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Opportunity, nil
}
