package ghl

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchConversations(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/search", r.URL.Path)
		assert.Equal(t, ConversationsVersion, r.Header.Get("Version"))
		assert.Equal(t, "loc_default", r.URL.Query().Get("locationId"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"conversations":[{"id":"conv1","contactId":"c1","unreadCount":2}],"total":1}`))
	})

	result, err := c.SearchConversations(context.Background(), SearchConversationsParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 2, result.Conversations[0].UnreadCount)
}

func TestGetMessagesDoubleEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages":{"messages":[
			{"id":"m1","body":"hello","direction":"inbound"},
			{"id":"m2","body":"hi there","direction":"outbound"}
		],"nextPage":false}}`))
	})

	msgs, err := c.GetMessages(context.Background(), "conv1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Body)
	assert.Equal(t, "outbound", msgs[1].Direction)
}

func TestSendMessageSMS(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"conversationId":"conv1","messageId":"m1"}`))
	})

	result, err := c.SendMessage(context.Background(), SendMessageParams{
		Type:      "SMS",
		ContactID: "c1",
		Message:   "Your appointment is confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv1", result.ConversationID)
	assert.Equal(t, "m1", result.MessageID)

	assert.Equal(t, "SMS", body["type"])
	assert.Equal(t, "c1", body["contactId"])
	_, hasHTML := body["html"]
	assert.False(t, hasHTML, "email-only fields must be omitted for SMS")
}

func TestGetMessageRecordingBinary(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x01} // RIFF header prefix
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/messages/m1/locations/loc_default/recording", r.URL.Path)
		w.Header().Set("Content-Type", "audio/x-wav")
		w.Write(audio)
	})

	data, err := c.GetMessageRecording(context.Background(), "m1", "")
	require.NoError(t, err)
	assert.Equal(t, audio, data)
}

func TestUpdateMessageStatus(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/messages/m1/status", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id":"m1","status":"read"}`))
	})

	msg, err := c.UpdateMessageStatus(context.Background(), "m1", "read")
	require.NoError(t, err)
	assert.Equal(t, "read", msg.Status)
	assert.Equal(t, "read", body["status"])
}
