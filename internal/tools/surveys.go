package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// SurveyTools covers surveys and their submissions.
type SurveyTools struct {
	client *ghl.Client
}

// NewSurveyTools creates the surveys module.
func NewSurveyTools(client *ghl.Client) *SurveyTools {
	return &SurveyTools{client: client}
}

// Name implements Module.
func (t *SurveyTools) Name() string { return "surveys" }

func (t *SurveyTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "get_surveys",
				Description: "List a location's surveys",
				InputSchema: schema(map[string]Property{
					"limit":      numberPropDefault("Maximum number of results", 10),
					"skip":       numberPropDefault("Number of results to skip", 0),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getSurveys,
		},
		{
			tool: Tool{
				Name:        "get_survey_submissions",
				Description: "List survey submissions with date and text filters",
				InputSchema: schema(map[string]Property{
					"surveyId":   stringProp("Restrict to one survey's submissions"),
					"query":      stringProp("Free-text search over submission answers"),
					"startAt":    stringProp("Earliest submission date (YYYY-MM-DD)"),
					"endAt":      stringProp("Latest submission date (YYYY-MM-DD)"),
					"limit":      numberPropDefault("Maximum number of results", 20),
					"page":       numberPropDefault("Page number", 1),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getSubmissions,
		},
	}
}

func (t *SurveyTools) getSurveys(ctx context.Context, args Args) (*Result, error) {
	surveys, err := t.client.GetSurveys(ctx, args.String("locationId"), args.Int("limit"), args.Int("skip"))
	if err != nil {
		return nil, fmt.Errorf("failed to get surveys: %w", err)
	}
	return ok(fmt.Sprintf("Found %d surveys", len(surveys)), surveys), nil
}

func (t *SurveyTools) getSubmissions(ctx context.Context, args Args) (*Result, error) {
	submissions, total, err := t.client.GetSurveySubmissions(ctx, ghl.GetSurveySubmissionsParams{
		LocationID: args.String("locationId"),
		SurveyID:   args.String("surveyId"),
		Query:      args.String("query"),
		StartAt:    args.String("startAt"),
		EndAt:      args.String("endAt"),
		Limit:      args.Int("limit"),
		Page:       args.Int("page"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get survey submissions: %w", err)
	}
	return ok(fmt.Sprintf("Found %d of %d submissions", len(submissions), total), submissions), nil
}
