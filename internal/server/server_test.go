package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/config"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/tools"
)

func testServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	log := logging.New(io.Discard, "error", "json")
	client := ghl.NewClient(ghl.Config{APIKey: "test-key"}, log)

	registry := tools.NewRegistry(log)
	require.NoError(t, registry.Register(tools.NewWorkflowTools(client)))
	require.NoError(t, registry.Register(tools.NewSurveyTools(client)))

	s, err := New(registry, cfg, log)
	require.NoError(t, err)
	return s
}

func TestNewRegistersAllTools(t *testing.T) {
	s := testServer(t, config.ServerConfig{Transport: "stdio"})
	assert.Equal(t, 5, s.registry.Len())
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	s := testServer(t, config.ServerConfig{Transport: "sse", Port: 8000})

	reached := false
	h := s.cors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/sse", nil)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, reached)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAllowOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"unrestricted", nil, "https://app.example.com", "*"},
		{"exact match", []string{"https://a.example.com", "https://b.example.com"}, "https://b.example.com", "https://b.example.com"},
		{"wildcard entry", []string{"*"}, "https://anything.example.com", "*"},
		{"no match falls back to first", []string{"https://a.example.com"}, "https://evil.example.com", "https://a.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t, config.ServerConfig{Transport: "sse", Port: 8000, AllowedOrigins: tt.allowed})
			assert.Equal(t, tt.want, s.allowOrigin(tt.origin))
		})
	}
}
