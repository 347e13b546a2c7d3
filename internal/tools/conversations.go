package tools

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// ConversationTools covers conversation search, messaging, and message-level
// reads over the SMS and email channels.
type ConversationTools struct {
	client *ghl.Client
}

// NewConversationTools creates the conversations module.
func NewConversationTools(client *ghl.Client) *ConversationTools {
	return &ConversationTools{client: client}
}

// Name implements Module.
func (t *ConversationTools) Name() string { return "conversations" }

func (t *ConversationTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "search_conversations",
				Description: "Search conversations, optionally filtered by contact or read status",
				InputSchema: schema(map[string]Property{
					"query":      stringProp("Free-text search over conversation content"),
					"contactId":  stringProp("Restrict to a single contact's conversations"),
					"status":     enumProp("Read-status filter", "all", "read", "unread", "starred"),
					"limit":      numberPropDefault("Maximum number of results", 20),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			policy:  returnResult,
			handler: t.searchConversations,
		},
		{
			tool: Tool{
				Name:        "get_conversation",
				Description: "Get a conversation with its recent messages",
				InputSchema: schema(map[string]Property{
					"conversationId": stringProp("The conversation's unique identifier"),
					"messageLimit":   numberPropDefault("Number of recent messages to include", 20),
				}, "conversationId"),
			},
			handler: t.getConversation,
		},
		{
			tool: Tool{
				Name:        "create_conversation",
				Description: "Start a new conversation with a contact",
				InputSchema: schema(map[string]Property{
					"contactId":  stringProp("The contact's unique identifier"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "contactId"),
			},
			handler: t.createConversation,
		},
		{
			tool: Tool{
				Name:        "send_sms",
				Description: "Send an SMS message to a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"message":   stringProp("SMS body text"),
				}, "contactId", "message"),
			},
			handler: t.sendSMS,
		},
		{
			tool: Tool{
				Name:        "send_email",
				Description: "Send an email to a contact",
				InputSchema: schema(map[string]Property{
					"contactId":   stringProp("The contact's unique identifier"),
					"subject":     stringProp("Email subject line"),
					"message":     stringProp("Plain-text body"),
					"html":        stringProp("HTML body (takes precedence over plain text)"),
					"emailFrom":   stringProp("Sender address override"),
					"attachments": stringArrayProp("Attachment URLs"),
				}, "contactId", "subject"),
			},
			handler: t.sendEmail,
		},
		{
			tool: Tool{
				Name:        "get_message",
				Description: "Get a single message by ID",
				InputSchema: schema(map[string]Property{
					"messageId": stringProp("The message's unique identifier"),
				}, "messageId"),
			},
			handler: t.getMessage,
		},
		{
			tool: Tool{
				Name:        "update_message_status",
				Description: "Update a message's delivery status",
				InputSchema: schema(map[string]Property{
					"messageId": stringProp("The message's unique identifier"),
					"status":    enumProp("New delivery status", "delivered", "failed", "pending", "read"),
				}, "messageId", "status"),
			},
			handler: t.updateMessageStatus,
		},
		{
			tool: Tool{
				Name:        "get_message_recording",
				Description: "Download a call recording as base64-encoded audio",
				InputSchema: schema(map[string]Property{
					"messageId":  stringProp("The call message's unique identifier"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "messageId"),
			},
			handler: t.getMessageRecording,
		},
		{
			tool: Tool{
				Name:        "get_email_message",
				Description: "Get the full email view of a message",
				InputSchema: schema(map[string]Property{
					"emailMessageId": stringProp("The email message's unique identifier"),
				}, "emailMessageId"),
			},
			handler: t.getEmailMessage,
		},
	}
}

func (t *ConversationTools) searchConversations(ctx context.Context, args Args) (*Result, error) {
	result, err := t.client.SearchConversations(ctx, ghl.SearchConversationsParams{
		LocationID: args.String("locationId"),
		ContactID:  args.String("contactId"),
		Query:      args.String("query"),
		Status:     args.String("status"),
		Limit:      args.Int("limit"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search conversations: %w", err)
	}
	return ok(fmt.Sprintf("Found %d conversations", result.Total), result.Conversations), nil
}

func (t *ConversationTools) getConversation(ctx context.Context, args Args) (*Result, error) {
	conversationID := args.String("conversationId")
	conversation, err := t.client.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	messages, err := t.client.GetMessages(ctx, conversationID, args.Int("messageLimit"))
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %w", err)
	}
	return ok(fmt.Sprintf("Conversation %s with %d messages", conversation.ID, len(messages)), map[string]any{
		"conversation": conversation,
		"messages":     messages,
	}), nil
}

func (t *ConversationTools) createConversation(ctx context.Context, args Args) (*Result, error) {
	conversation, err := t.client.CreateConversation(ctx, args.String("locationId"), args.String("contactId"))
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return ok(fmt.Sprintf("Conversation created with ID %s", conversation.ID), conversation), nil
}

func (t *ConversationTools) sendSMS(ctx context.Context, args Args) (*Result, error) {
	result, err := t.client.SendMessage(ctx, ghl.SendMessageParams{
		Type:      "SMS",
		ContactID: args.String("contactId"),
		Message:   args.String("message"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}
	return ok(fmt.Sprintf("SMS sent, message ID %s", result.MessageID), result), nil
}

func (t *ConversationTools) sendEmail(ctx context.Context, args Args) (*Result, error) {
	result, err := t.client.SendMessage(ctx, ghl.SendMessageParams{
		Type:        "Email",
		ContactID:   args.String("contactId"),
		Subject:     args.String("subject"),
		Message:     args.String("message"),
		HTML:        args.String("html"),
		EmailFrom:   args.String("emailFrom"),
		Attachments: args.StringSlice("attachments"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	return ok(fmt.Sprintf("Email sent, message ID %s", result.MessageID), result), nil
}

func (t *ConversationTools) getMessage(ctx context.Context, args Args) (*Result, error) {
	message, err := t.client.GetMessage(ctx, args.String("messageId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved message %s", message.ID), message), nil
}

func (t *ConversationTools) updateMessageStatus(ctx context.Context, args Args) (*Result, error) {
	message, err := t.client.UpdateMessageStatus(ctx, args.String("messageId"), args.String("status"))
	if err != nil {
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}
	return ok(fmt.Sprintf("Message %s marked %s", message.ID, message.Status), message), nil
}

func (t *ConversationTools) getMessageRecording(ctx context.Context, args Args) (*Result, error) {
	audio, err := t.client.GetMessageRecording(ctx, args.String("messageId"), args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get message recording: %w", err)
	}
	return ok(fmt.Sprintf("Recording retrieved (%d bytes)", len(audio)), map[string]any{
		"contentType": "audio/x-wav",
		"data":        base64.StdEncoding.EncodeToString(audio),
	}), nil
}

func (t *ConversationTools) getEmailMessage(ctx context.Context, args Args) (*Result, error) {
	email, err := t.client.GetEmailMessage(ctx, args.String("emailMessageId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get email message: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved email message %s", email.ID), email), nil
}
