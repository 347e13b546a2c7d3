package ghl

import (
	"context"
	"net/http"
	"net/url"
)

// Workflow is an automation workflow.
type Workflow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status,omitempty"` // draft, published
	Version    int    `json:"version,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// GetWorkflows lists a location's workflows.
func (c *Client) GetWorkflows(ctx context.Context, locationID string) ([]Workflow, error) {
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	data, err := c.do(ctx, http.MethodGet, "/workflows/", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Workflows []Workflow `json:"workflows"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Workflows, nil
}
