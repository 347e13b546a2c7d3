package ghl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		LocationID: "loc_default",
	}, nil)
	return c, srv
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"contact":{"id":"c1"}}`))
	})

	_, err := c.GetContact(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", got.Get("Authorization"))
	assert.Equal(t, DefaultVersion, got.Get("Version"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestConversationsVersionHeader(t *testing.T) {
	var got string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Version")
		w.Write([]byte(`{"id":"conv1"}`))
	})

	_, err := c.GetConversation(context.Background(), "conv1")
	require.NoError(t, err)
	assert.Equal(t, ConversationsVersion, got)
}

func TestAPIErrorStringMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Contact not found"}`))
	})

	_, err := c.GetContact(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Contact not found", apiErr.Message)
	assert.Equal(t, "GHL API Error (404): Contact not found", apiErr.Error())
}

func TestAPIErrorArrayMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":["email must be valid","phone is required"]}`))
	})

	_, err := c.GetContact(context.Background(), "c1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email must be valid, phone is required", apiErr.Message)
}

func TestAPIErrorFallbackToStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetContact(context.Background(), "c1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestTransportErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, nil)
	_, err := c.GetContact(context.Background(), "c1")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not carry an HTTP status")
	assert.Contains(t, err.Error(), "request failed")
}

func TestUpdateAPIKey(t *testing.T) {
	var auths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		w.Write([]byte(`{"contact":{"id":"c1"}}`))
	})

	_, err := c.GetContact(context.Background(), "c1")
	require.NoError(t, err)

	c.UpdateAPIKey("rotated-key")
	_, err = c.GetContact(context.Background(), "c1")
	require.NoError(t, err)

	require.Len(t, auths, 2)
	assert.Equal(t, "Bearer test-key", auths[0])
	assert.Equal(t, "Bearer rotated-key", auths[1])
}

func TestDefaultLocationMerged(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"contact":{"id":"c1"}}`))
	})

	_, err := c.CreateContact(context.Background(), CreateContactParams{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "loc_default", body["locationId"])

	_, err = c.CreateContact(context.Background(), CreateContactParams{LocationID: "loc_override", Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "loc_override", body["locationId"])
}

func TestFalsyFieldsStripped(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"contact":{"id":"c1"}}`))
	})

	_, err := c.CreateContact(context.Background(), CreateContactParams{Email: "a@b.co"})
	require.NoError(t, err)

	_, hasFirst := body["firstName"]
	_, hasTags := body["tags"]
	assert.False(t, hasFirst, "empty optional fields must be omitted")
	assert.False(t, hasTags, "empty slices must be omitted")
	assert.Equal(t, "a@b.co", body["email"])
}

func TestFlexMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `{"message":"boom"}`, "boom"},
		{"array", `{"message":["a","b","c"]}`, "a, b, c"},
		{"number ignored", `{"message":42}`, ""},
		{"missing", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var envelope struct {
				Message flexMessage `json:"message"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &envelope))
			assert.Equal(t, tt.want, string(envelope.Message))
		})
	}
}

func TestCompact(t *testing.T) {
	m := compact(map[string]any{
		"keep":     "value",
		"zero":     0, // numbers are kept; zero can be meaningful
		"empty":    "",
		"nil":      nil,
		"noSlice":  []string{},
		"slice":    []string{"a"},
		"noMap":    map[string]any{},
		"boolKeep": false,
	})
	assert.Equal(t, map[string]any{
		"keep":     "value",
		"zero":     0,
		"slice":    []string{"a"},
		"boolKeep": false,
	}, m)
}
