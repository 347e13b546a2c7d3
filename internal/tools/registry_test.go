package tools

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
)

type fakeModule struct {
	name  string
	binds []binding
}

func (m *fakeModule) Name() string        { return m.name }
func (m *fakeModule) bindings() []binding { return m.binds }

func testLogger() *logging.Logger {
	return logging.New(io.Discard, "error", "json")
}

func echoBinding(name string, policy errorPolicy, required ...string) binding {
	return binding{
		tool: Tool{
			Name:        name,
			Description: "test tool",
			InputSchema: schema(map[string]Property{
				"value": stringProp("value to echo"),
			}, required...),
		},
		policy: policy,
		handler: func(_ context.Context, args Args) (*Result, error) {
			return ok("echo", args.String("value")), nil
		},
	}
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	r := NewRegistry(testLogger())

	_, err := r.Execute(context.Background(), "no_such_tool", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool: no_such_tool")
}

func TestRegistryRejectsDuplicateToolNames(t *testing.T) {
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(&fakeModule{name: "a", binds: []binding{echoBinding("dup", throwOnError)}}))

	err := r.Register(&fakeModule{name: "b", binds: []binding{echoBinding("dup", throwOnError)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
}

func TestRegistryValidatesRequiredArguments(t *testing.T) {
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(&fakeModule{name: "a", binds: []binding{echoBinding("echo", throwOnError, "value")}}))

	tests := []struct {
		name string
		args map[string]any
		fail bool
	}{
		{"missing", map[string]any{}, true},
		{"nil value", map[string]any{"value": nil}, true},
		{"empty string", map[string]any{"value": ""}, true},
		{"present", map[string]any{"value": "hi"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Execute(context.Background(), "echo", tt.args)
			if tt.fail {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "missing required arguments")
				assert.Contains(t, err.Error(), "value")
			} else {
				require.NoError(t, err)
				assert.True(t, result.Success)
			}
		})
	}
}

func TestRegistryErrorPolicies(t *testing.T) {
	failing := func(name string, policy errorPolicy) binding {
		return binding{
			tool: Tool{
				Name:        name,
				Description: "always fails",
				InputSchema: schema(map[string]Property{}),
			},
			policy: policy,
			handler: func(context.Context, Args) (*Result, error) {
				return nil, errors.New("backend unavailable")
			},
		}
	}
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(&fakeModule{name: "a", binds: []binding{
		failing("fail_throw", throwOnError), failing("fail_return", returnResult),
	}}))

	_, err := r.Execute(context.Background(), "fail_throw", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")

	result, err := r.Execute(context.Background(), "fail_return", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "backend unavailable")
}

func TestRegistryToolsPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(&fakeModule{name: "a", binds: []binding{
		echoBinding("first", throwOnError),
		echoBinding("second", throwOnError),
	}}))
	require.NoError(t, r.Register(&fakeModule{name: "b", binds: []binding{
		echoBinding("third", throwOnError),
	}}))

	names := make([]string, 0, r.Len())
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}
