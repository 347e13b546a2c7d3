package ghl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Conversation is a message thread with a contact.
type Conversation struct {
	ID              string `json:"id"`
	LocationID      string `json:"locationId,omitempty"`
	ContactID       string `json:"contactId,omitempty"`
	LastMessageBody string `json:"lastMessageBody,omitempty"`
	LastMessageType string `json:"lastMessageType,omitempty"`
	Type            string `json:"type,omitempty"`
	UnreadCount     int    `json:"unreadCount,omitempty"`
	FullName        string `json:"fullName,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

// Message is a single message within a conversation.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId,omitempty"`
	Type           int    `json:"type,omitempty"`
	MessageType    string `json:"messageType,omitempty"`
	Direction      string `json:"direction,omitempty"`
	Status         string `json:"status,omitempty"`
	Body           string `json:"body,omitempty"`
	ContactID      string `json:"contactId,omitempty"`
	DateAdded      string `json:"dateAdded,omitempty"`
	Attachments    []any  `json:"attachments,omitempty"`
}

// SearchConversationsParams filters a conversation search.
type SearchConversationsParams struct {
	LocationID string
	ContactID  string
	Query      string
	Status     string // "all", "read", "unread", "starred"
	Limit      int
}

// SearchConversationsResult is a page of matching conversations.
type SearchConversationsResult struct {
	Conversations []Conversation `json:"conversations"`
	Total         int            `json:"total"`
}

// SearchConversations queries conversations. Limit defaults to 20.
func (c *Client) SearchConversations(ctx context.Context, p SearchConversationsParams) (*SearchConversationsResult, error) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(p.LocationID))
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.ContactID != "" {
		q.Set("contactId", p.ContactID)
	}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	data, err := c.do(ctx, http.MethodGet, "/conversations/search", q, nil, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var result SearchConversationsResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetConversation fetches one conversation by ID.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	data, err := c.do(ctx, http.MethodGet, "/conversations/"+conversationID, nil, nil, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var conv Conversation
	if err := decode(data, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// CreateConversation starts a conversation with a contact.
func (c *Client) CreateConversation(ctx context.Context, locationID, contactID string) (*Conversation, error) {
	body := map[string]any{
		"locationId": c.defaultLocationID(locationID),
		"contactId":  contactID,
	}
	data, err := c.do(ctx, http.MethodPost, "/conversations/", nil, body, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Conversation *Conversation `json:"conversation"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Conversation, nil
}

// SendMessageParams describes an outbound message. Type selects the channel
// ("SMS", "Email", "WhatsApp", "IG", "FB", "Custom", "Live_Chat").
type SendMessageParams struct {
	Type        string
	ContactID   string
	Message     string // SMS / chat body
	Subject     string // email only
	HTML        string // email only
	EmailFrom   string
	EmailTo     string
	Attachments []string
}

// SendMessageResult identifies the created message and its conversation.
type SendMessageResult struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
}

// SendMessage sends a message to a contact over the given channel.
func (c *Client) SendMessage(ctx context.Context, p SendMessageParams) (*SendMessageResult, error) {
	body := compact(map[string]any{
		"type":        p.Type,
		"contactId":   p.ContactID,
		"message":     p.Message,
		"subject":     p.Subject,
		"html":        p.HTML,
		"emailFrom":   p.EmailFrom,
		"emailTo":     p.EmailTo,
		"attachments": p.Attachments,
	})
	data, err := c.do(ctx, http.MethodPost, "/conversations/messages", nil, body, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var result SendMessageResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMessages lists the messages of a conversation, newest first.
func (c *Client) GetMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	data, err := c.do(ctx, http.MethodGet, "/conversations/"+conversationID+"/messages", q, nil, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	// The messages list is double-wrapped upstream.
	var envelope struct {
		Messages struct {
			Messages []Message `json:"messages"`
		} `json:"messages"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Messages.Messages, nil
}

// GetMessage fetches a single message by ID.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	data, err := c.do(ctx, http.MethodGet, "/conversations/messages/"+messageID, nil, nil, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := decode(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateMessageStatus sets a message's delivery status ("delivered", "read",
// "pending", "undelivered", "failed").
func (c *Client) UpdateMessageStatus(ctx context.Context, messageID, status string) (*Message, error) {
	data, err := c.do(ctx, http.MethodPut, "/conversations/messages/"+messageID+"/status", nil,
		map[string]any{"status": status}, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := decode(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessageRecording downloads a call recording as raw audio bytes.
func (c *Client) GetMessageRecording(ctx context.Context, messageID, locationID string) ([]byte, error) {
	path := "/conversations/messages/" + messageID + "/locations/" + c.defaultLocationID(locationID) + "/recording"
	return c.do(ctx, http.MethodGet, path, nil, nil, withVersion(ConversationsVersion))
}

// EmailMessage is the email-specific view of a message.
type EmailMessage struct {
	ID        string   `json:"id"`
	Subject   string   `json:"subject,omitempty"`
	Body      string   `json:"body,omitempty"`
	From      string   `json:"from,omitempty"`
	To        []string `json:"to,omitempty"`
	CC        []string `json:"cc,omitempty"`
	Status    string   `json:"status,omitempty"`
	DateAdded string   `json:"dateAdded,omitempty"`
}

// GetEmailMessage fetches the email view of a message by email message ID.
func (c *Client) GetEmailMessage(ctx context.Context, emailMessageID string) (*EmailMessage, error) {
	data, err := c.do(ctx, http.MethodGet, "/conversations/messages/email/"+emailMessageID, nil, nil, withVersion(ConversationsVersion))
	if err != nil {
		return nil, err
	}
	var msg EmailMessage
	if err := decode(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
