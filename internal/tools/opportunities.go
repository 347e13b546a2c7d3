package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// OpportunityTools covers pipelines and opportunity CRUD.
type OpportunityTools struct {
	client *ghl.Client
}

// NewOpportunityTools creates the opportunities module.
func NewOpportunityTools(client *ghl.Client) *OpportunityTools {
	return &OpportunityTools{client: client}
}

// Name implements Module.
func (t *OpportunityTools) Name() string { return "opportunities" }

func (t *OpportunityTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "search_opportunities",
				Description: "Search opportunities with pipeline, stage, status, and contact filters",
				InputSchema: schema(map[string]Property{
					"query":           stringProp("Free-text search over opportunity names"),
					"pipelineId":      stringProp("Restrict to a pipeline"),
					"pipelineStageId": stringProp("Restrict to a pipeline stage"),
					"status":          enumProp("Opportunity status filter", "open", "won", "lost", "abandoned"),
					"contactId":       stringProp("Restrict to a contact's opportunities"),
					"limit":           numberPropDefault("Maximum number of results", 20),
					"locationId":      stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			policy:  returnResult,
			handler: t.searchOpportunities,
		},
		{
			tool: Tool{
				Name:        "get_pipelines",
				Description: "List all sales pipelines and their stages",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getPipelines,
		},
		{
			tool: Tool{
				Name:        "get_opportunity",
				Description: "Get an opportunity by ID",
				InputSchema: schema(map[string]Property{
					"opportunityId": stringProp("The opportunity's unique identifier"),
				}, "opportunityId"),
			},
			handler: t.getOpportunity,
		},
		{
			tool: Tool{
				Name:        "create_opportunity",
				Description: "Create an opportunity in a pipeline",
				InputSchema: schema(map[string]Property{
					"name":            stringProp("Opportunity name"),
					"pipelineId":      stringProp("Pipeline to create the opportunity in"),
					"pipelineStageId": stringProp("Initial stage"),
					"status":          enumProp("Initial status", "open", "won", "lost", "abandoned"),
					"contactId":       stringProp("Contact the opportunity belongs to"),
					"monetaryValue":   numberProp("Deal value"),
					"assignedTo":      stringProp("User ID to assign the opportunity to"),
					"locationId":      stringProp("Location ID (uses the configured default when omitted)"),
				}, "name", "pipelineId"),
			},
			handler: t.createOpportunity,
		},
		{
			tool: Tool{
				Name:        "update_opportunity",
				Description: "Update an opportunity's fields",
				InputSchema: schema(map[string]Property{
					"opportunityId":   stringProp("The opportunity's unique identifier"),
					"name":            stringProp("Opportunity name"),
					"pipelineStageId": stringProp("Stage to move the opportunity to"),
					"status":          enumProp("New status", "open", "won", "lost", "abandoned"),
					"monetaryValue":   numberProp("Deal value"),
					"assignedTo":      stringProp("User ID to assign the opportunity to"),
				}, "opportunityId"),
			},
			handler: t.updateOpportunity,
		},
		{
			tool: Tool{
				Name:        "delete_opportunity",
				Description: "Permanently delete an opportunity",
				InputSchema: schema(map[string]Property{
					"opportunityId": stringProp("The opportunity's unique identifier"),
				}, "opportunityId"),
			},
			handler: t.deleteOpportunity,
		},
		{
			tool: Tool{
				Name:        "update_opportunity_status",
				Description: "Change only an opportunity's status",
				InputSchema: schema(map[string]Property{
					"opportunityId": stringProp("The opportunity's unique identifier"),
					"status":        enumProp("New status", "open", "won", "lost", "abandoned"),
				}, "opportunityId", "status"),
			},
			handler: t.updateStatus,
		},
		{
			tool: Tool{
				Name:        "upsert_opportunity",
				Description: "Create an opportunity, or update the existing one for the same contact and pipeline",
				InputSchema: schema(map[string]Property{
					"name":            stringProp("Opportunity name"),
					"pipelineId":      stringProp("Pipeline the opportunity belongs to"),
					"pipelineStageId": stringProp("Stage for the opportunity"),
					"status":          enumProp("Status", "open", "won", "lost", "abandoned"),
					"contactId":       stringProp("Contact the opportunity belongs to"),
					"monetaryValue":   numberProp("Deal value"),
					"locationId":      stringProp("Location ID (uses the configured default when omitted)"),
				}, "pipelineId", "contactId"),
			},
			handler: t.upsertOpportunity,
		},
	}
}

func (t *OpportunityTools) opportunityParams(args Args) ghl.OpportunityParams {
	return ghl.OpportunityParams{
		LocationID:    args.String("locationId"),
		Name:          args.String("name"),
		PipelineID:    args.String("pipelineId"),
		StageID:       args.String("pipelineStageId"),
		Status:        args.String("status"),
		ContactID:     args.String("contactId"),
		MonetaryValue: args.Float("monetaryValue"),
		AssignedTo:    args.String("assignedTo"),
	}
}

func (t *OpportunityTools) searchOpportunities(ctx context.Context, args Args) (*Result, error) {
	result, err := t.client.SearchOpportunities(ctx, ghl.SearchOpportunitiesParams{
		LocationID: args.String("locationId"),
		Query:      args.String("query"),
		PipelineID: args.String("pipelineId"),
		StageID:    args.String("pipelineStageId"),
		Status:     args.String("status"),
		ContactID:  args.String("contactId"),
		Limit:      args.Int("limit"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search opportunities: %w", err)
	}
	return ok(fmt.Sprintf("Found %d opportunities", result.Meta.Total), result.Opportunities), nil
}

func (t *OpportunityTools) getPipelines(ctx context.Context, args Args) (*Result, error) {
	pipelines, err := t.client.GetPipelines(ctx, args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get pipelines: %w", err)
	}
	return ok(fmt.Sprintf("Found %d pipelines", len(pipelines)), pipelines), nil
}

func (t *OpportunityTools) getOpportunity(ctx context.Context, args Args) (*Result, error) {
	opportunity, err := t.client.GetOpportunity(ctx, args.String("opportunityId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved opportunity %s", opportunity.ID), opportunity), nil
}

func (t *OpportunityTools) createOpportunity(ctx context.Context, args Args) (*Result, error) {
	opportunity, err := t.client.CreateOpportunity(ctx, t.opportunityParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	return ok(fmt.Sprintf("Opportunity created with ID %s", opportunity.ID), opportunity), nil
}

func (t *OpportunityTools) updateOpportunity(ctx context.Context, args Args) (*Result, error) {
	opportunity, err := t.client.UpdateOpportunity(ctx, args.String("opportunityId"), t.opportunityParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}
	return ok(fmt.Sprintf("Opportunity %s updated", opportunity.ID), opportunity), nil
}

func (t *OpportunityTools) deleteOpportunity(ctx context.Context, args Args) (*Result, error) {
	opportunityID := args.String("opportunityId")
	if err := t.client.DeleteOpportunity(ctx, opportunityID); err != nil {
		return nil, fmt.Errorf("failed to delete opportunity: %w", err)
	}
	return ok(fmt.Sprintf("Opportunity %s deleted", opportunityID), nil), nil
}

func (t *OpportunityTools) updateStatus(ctx context.Context, args Args) (*Result, error) {
	opportunityID := args.String("opportunityId")
	status := args.String("status")
	if err := t.client.UpdateOpportunityStatus(ctx, opportunityID, status); err != nil {
		return nil, fmt.Errorf("failed to update opportunity status: %w", err)
	}
	return ok(fmt.Sprintf("Opportunity %s marked %s", opportunityID, status), nil), nil
}

func (t *OpportunityTools) upsertOpportunity(ctx context.Context, args Args) (*Result, error) {
	opportunity, err := t.client.UpsertOpportunity(ctx, t.opportunityParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert opportunity: %w", err)
	}
	return ok(fmt.Sprintf("Opportunity %s upserted", opportunity.ID), opportunity), nil
}
