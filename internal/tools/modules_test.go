package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

func newTestRegistry(t *testing.T, handler http.HandlerFunc) *Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := ghl.NewClient(ghl.Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		LocationID: "loc_default",
	}, testLogger())

	r := NewRegistry(testLogger())
	for _, m := range []Module{
		NewContactTools(client),
		NewConversationTools(client),
		NewOpportunityTools(client),
		NewLocationTools(client),
		NewCalendarTools(client),
		NewEmailTools(client),
		NewVerificationTools(client),
		NewMediaTools(client),
		NewWorkflowTools(client),
		NewSurveyTools(client),
	} {
		require.NoError(t, r.Register(m))
	}
	return r
}

func TestRegistryCatalogCoversAllModules(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, 81, r.Len())

	// Spot-check one tool from each module.
	want := []string{
		"create_contact", "search_conversations", "get_pipelines",
		"search_locations", "get_free_slots", "get_email_campaigns",
		"verify_email", "upload_media_file", "get_workflows", "get_surveys",
	}
	seen := map[string]bool{}
	for _, tool := range r.Tools() {
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, "tool %s schema type", tool.Name)
		seen[tool.Name] = true
	}
	for _, name := range want {
		assert.True(t, seen[name], "missing tool %s", name)
	}
}

// syntheticArgs builds a minimal argument object satisfying a schema's
// required list.
func syntheticArgs(s InputSchema) map[string]any {
	args := map[string]any{}
	for _, key := range s.Required {
		switch s.Properties[key].Type {
		case "number":
			args[key] = float64(1)
		case "boolean":
			args[key] = true
		case "array":
			args[key] = []any{"x"}
		case "object":
			args[key] = map[string]any{"k": "v"}
		default:
			args[key] = "x"
		}
	}
	return args
}

func TestEveryCatalogedToolDispatches(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	for _, tool := range r.Tools() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tool.Name, syntheticArgs(tool.InputSchema))
			if err != nil {
				assert.NotContains(t, err.Error(), "unknown tool")
				assert.NotContains(t, err.Error(), "missing required arguments")
			}
		})
	}
}

func TestGetConversationMergesMessages(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/conversations/conv_1":
			json.NewEncoder(w).Encode(map[string]any{"id": "conv_1", "contactId": "con_9"})
		case "/conversations/conv_1/messages":
			json.NewEncoder(w).Encode(map[string]any{
				"messages": map[string]any{
					"messages": []map[string]any{
						{"id": "msg_1", "body": "hello"},
						{"id": "msg_2", "body": "world"},
					},
				},
			})
		default:
			t.Errorf("unexpected path %s", req.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := r.Execute(context.Background(), "get_conversation", map[string]any{
		"conversationId": "conv_1",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "2 messages")

	data, isMap := result.Data.(map[string]any)
	require.True(t, isMap)
	conversation, isConv := data["conversation"].(*ghl.Conversation)
	require.True(t, isConv)
	assert.Equal(t, "conv_1", conversation.ID)
	messages, isMsgs := data["messages"].([]ghl.Message)
	require.True(t, isMsgs)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Body)
}

func TestGetOpportunityWrapsRemoteError(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"message": "Opportunity not found"})
	})

	_, err := r.Execute(context.Background(), "get_opportunity", map[string]any{
		"opportunityId": "opp_missing",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get opportunity")
	assert.Contains(t, err.Error(), "GHL API Error (404)")
	assert.Contains(t, err.Error(), "Opportunity not found")
}

func TestSearchContactsFailureIsSoft(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{"message": "upstream timeout"})
	})

	result, err := r.Execute(context.Background(), "search_contacts", map[string]any{
		"query": "jane",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "upstream timeout")
}

func TestVerifyEmailReportsOutcome(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/email/verify", req.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"result": "undeliverable", "risk": "high"})
	})

	result, err := r.Execute(context.Background(), "verify_email", map[string]any{
		"email": "bounce@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "undeliverable")
}

func TestUploadMediaFileRejectsAmbiguousSource(t *testing.T) {
	requests := 0
	r := newTestRegistry(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	})

	_, err := r.Execute(context.Background(), "upload_media_file", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either filePath or fileUrl")

	_, err = r.Execute(context.Background(), "upload_media_file", map[string]any{
		"filePath": "/tmp/a.png",
		"fileUrl":  "https://example.com/a.png",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	assert.Zero(t, requests, "validation must run before any request")
}

func TestUpdateContactTaskLeavesCompletionAlone(t *testing.T) {
	var body map[string]any
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/contacts/c1/tasks/t1", req.URL.Path)
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{
			"task": map[string]any{"id": "t1", "title": "Renamed", "completed": true},
		})
	})

	result, err := r.Execute(context.Background(), "update_contact_task", map[string]any{
		"contactId": "c1",
		"taskId":    "t1",
		"title":     "Renamed",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	_, sent := body["completed"]
	assert.False(t, sent, "a title-only update must not change completion")

	result, err = r.Execute(context.Background(), "update_contact_task", map[string]any{
		"contactId": "c1",
		"taskId":    "t1",
		"completed": false,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, false, body["completed"])
}

func TestSendSMSSubmitsMessagePayload(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/conversations/messages", req.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "SMS", body["type"])
		assert.Equal(t, "con_1", body["contactId"])
		assert.Equal(t, "hi there", body["message"])
		json.NewEncoder(w).Encode(map[string]any{
			"conversationId": "conv_7", "messageId": "msg_7",
		})
	})

	result, err := r.Execute(context.Background(), "send_sms", map[string]any{
		"contactId": "con_1",
		"message":   "hi there",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "msg_7")
}
