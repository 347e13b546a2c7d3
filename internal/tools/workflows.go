package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// WorkflowTools covers workflow listing and contact enrollment.
type WorkflowTools struct {
	client *ghl.Client
}

// NewWorkflowTools creates the workflows module.
func NewWorkflowTools(client *ghl.Client) *WorkflowTools {
	return &WorkflowTools{client: client}
}

// Name implements Module.
func (t *WorkflowTools) Name() string { return "workflows" }

func (t *WorkflowTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "get_workflows",
				Description: "List a location's automation workflows",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getWorkflows,
		},
		{
			tool: Tool{
				Name:        "add_contact_to_workflow",
				Description: "Enroll a contact in a workflow",
				InputSchema: schema(map[string]Property{
					"contactId":      stringProp("The contact's unique identifier"),
					"workflowId":     stringProp("The workflow's unique identifier"),
					"eventStartTime": stringProp("Optional start time for the enrollment (ISO 8601)"),
				}, "contactId", "workflowId"),
			},
			handler: t.addContact,
		},
		{
			tool: Tool{
				Name:        "remove_contact_from_workflow",
				Description: "Remove a contact from a workflow",
				InputSchema: schema(map[string]Property{
					"contactId":  stringProp("The contact's unique identifier"),
					"workflowId": stringProp("The workflow's unique identifier"),
				}, "contactId", "workflowId"),
			},
			handler: t.removeContact,
		},
	}
}

func (t *WorkflowTools) getWorkflows(ctx context.Context, args Args) (*Result, error) {
	workflows, err := t.client.GetWorkflows(ctx, args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get workflows: %w", err)
	}
	return ok(fmt.Sprintf("Found %d workflows", len(workflows)), workflows), nil
}

func (t *WorkflowTools) addContact(ctx context.Context, args Args) (*Result, error) {
	contactID := args.String("contactId")
	workflowID := args.String("workflowId")
	if err := t.client.AddContactToWorkflow(ctx, contactID, workflowID, args.String("eventStartTime")); err != nil {
		return nil, fmt.Errorf("failed to add contact to workflow: %w", err)
	}
	return ok(fmt.Sprintf("Contact %s added to workflow %s", contactID, workflowID), nil), nil
}

func (t *WorkflowTools) removeContact(ctx context.Context, args Args) (*Result, error) {
	contactID := args.String("contactId")
	workflowID := args.String("workflowId")
	if err := t.client.RemoveContactFromWorkflow(ctx, contactID, workflowID); err != nil {
		return nil, fmt.Errorf("failed to remove contact from workflow: %w", err)
	}
	return ok(fmt.Sprintf("Contact %s removed from workflow %s", contactID, workflowID), nil), nil
}
