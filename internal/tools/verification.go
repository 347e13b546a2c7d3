package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// VerificationTools exposes email deliverability checks.
type VerificationTools struct {
	client *ghl.Client
}

// NewVerificationTools creates the verification module.
func NewVerificationTools(client *ghl.Client) *VerificationTools {
	return &VerificationTools{client: client}
}

// Name implements Module.
func (t *VerificationTools) Name() string { return "verification" }

func (t *VerificationTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "verify_email",
				Description: "Check whether an email address is deliverable before sending to it",
				InputSchema: schema(map[string]Property{
					"email":      stringProp("Email address to verify"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "email"),
			},
			policy:  returnResult,
			handler: t.verifyEmail,
		},
	}
}

func (t *VerificationTools) verifyEmail(ctx context.Context, args Args) (*Result, error) {
	email := args.String("email")
	verification, err := t.client.VerifyEmail(ctx, args.String("locationId"), email)
	if err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	return ok(fmt.Sprintf("Verification for %s: %s", email, verification.Result), verification), nil
}
