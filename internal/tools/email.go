package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// EmailTools covers email campaigns and builder templates.
type EmailTools struct {
	client *ghl.Client
}

// NewEmailTools creates the email module.
func NewEmailTools(client *ghl.Client) *EmailTools {
	return &EmailTools{client: client}
}

// Name implements Module.
func (t *EmailTools) Name() string { return "email" }

func (t *EmailTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "get_email_campaigns",
				Description: "List email campaigns and their schedule status",
				InputSchema: schema(map[string]Property{
					"status":     enumProp("Campaign status filter", "active", "pause", "complete", "cancelled", "retry", "draft", "resend-scheduled"),
					"limit":      numberPropDefault("Maximum number of results", 10),
					"offset":     numberPropDefault("Number of results to skip", 0),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getCampaigns,
		},
		{
			tool: Tool{
				Name:        "create_email_template",
				Description: "Create an email builder template",
				InputSchema: schema(map[string]Property{
					"title":      stringProp("Template title"),
					"type":       enumProp("Template kind", "html", "folder", "import"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "title"),
			},
			handler: t.createTemplate,
		},
		{
			tool: Tool{
				Name:        "get_email_templates",
				Description: "List email builder templates",
				InputSchema: schema(map[string]Property{
					"limit":      numberPropDefault("Maximum number of results", 10),
					"offset":     numberPropDefault("Number of results to skip", 0),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getTemplates,
		},
		{
			tool: Tool{
				Name:        "update_email_template",
				Description: "Update an email template's design",
				InputSchema: schema(map[string]Property{
					"templateId": stringProp("The template's unique identifier"),
					"html":       stringProp("Preview HTML for the template"),
					"dnd":        objectProp("Drag-and-drop editor document"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "templateId", "html", "dnd"),
			},
			handler: t.updateTemplate,
		},
		{
			tool: Tool{
				Name:        "delete_email_template",
				Description: "Delete an email builder template",
				InputSchema: schema(map[string]Property{
					"templateId": stringProp("The template's unique identifier"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "templateId"),
			},
			handler: t.deleteTemplate,
		},
	}
}

func (t *EmailTools) getCampaigns(ctx context.Context, args Args) (*Result, error) {
	campaigns, err := t.client.GetEmailCampaigns(ctx, args.String("locationId"), args.String("status"), args.Int("limit"), args.Int("offset"))
	if err != nil {
		return nil, fmt.Errorf("failed to get email campaigns: %w", err)
	}
	return ok(fmt.Sprintf("Found %d campaigns", len(campaigns)), campaigns), nil
}

func (t *EmailTools) createTemplate(ctx context.Context, args Args) (*Result, error) {
	created, err := t.client.CreateEmailTemplate(ctx, args.String("locationId"), args.String("title"), args.String("type"))
	if err != nil {
		return nil, fmt.Errorf("failed to create email template: %w", err)
	}
	return ok("Email template created", created), nil
}

func (t *EmailTools) getTemplates(ctx context.Context, args Args) (*Result, error) {
	templates, err := t.client.GetEmailTemplates(ctx, args.String("locationId"), args.Int("limit"), args.Int("offset"))
	if err != nil {
		return nil, fmt.Errorf("failed to get email templates: %w", err)
	}
	return ok(fmt.Sprintf("Found %d templates", len(templates)), templates), nil
}

func (t *EmailTools) updateTemplate(ctx context.Context, args Args) (*Result, error) {
	templateID := args.String("templateId")
	if err := t.client.UpdateEmailTemplate(ctx, args.String("locationId"), templateID, args.Map("dnd"), args.String("html")); err != nil {
		return nil, fmt.Errorf("failed to update email template: %w", err)
	}
	return ok(fmt.Sprintf("Template %s updated", templateID), nil), nil
}

func (t *EmailTools) deleteTemplate(ctx context.Context, args Args) (*Result, error) {
	templateID := args.String("templateId")
	if err := t.client.DeleteEmailTemplate(ctx, args.String("locationId"), templateID); err != nil {
		return nil, fmt.Errorf("failed to delete email template: %w", err)
	}
	return ok(fmt.Sprintf("Template %s deleted", templateID), nil), nil
}
