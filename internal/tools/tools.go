// Package tools exposes the GoHighLevel API as named, schema-described
// operations for an MCP server.
//
// Each module declares a single table of bindings; the catalog returned by
// Tools and the dispatch performed by Execute both derive from that table,
// so the two surfaces cannot drift apart.
package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
)

// Tool is the static metadata advertising an operation's contract.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema is a JSON Schema object describing a tool's arguments.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one argument.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Items       *Item    `json:"items,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Item types the elements of an array property.
type Item struct {
	Type string `json:"type"`
}

// Schema property constructors.

func stringProp(desc string) Property {
	return Property{Type: "string", Description: desc}
}

func stringPropDefault(desc string, def any) Property {
	return Property{Type: "string", Description: desc, Default: def}
}

func stringArrayProp(desc string) Property {
	return Property{Type: "array", Description: desc, Items: &Item{Type: "string"}}
}

func boolProp(desc string) Property {
	return Property{Type: "boolean", Description: desc}
}

func numberProp(desc string) Property {
	return Property{Type: "number", Description: desc}
}

func numberPropDefault(desc string, def any) Property {
	return Property{Type: "number", Description: desc, Default: def}
}

func enumProp(desc string, values ...string) Property {
	return Property{Type: "string", Description: desc, Enum: values}
}

func objectProp(desc string) Property {
	return Property{Type: "object", Description: desc}
}

func schema(props map[string]Property, required ...string) InputSchema {
	if props == nil {
		props = map[string]Property{}
	}
	return InputSchema{Type: "object", Properties: props, Required: required}
}

// Result is what every tool invocation produces on the success path.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(message string, data any) *Result {
	return &Result{Success: true, Message: message, Data: data}
}

// Handler executes one tool invocation.
type Handler func(ctx context.Context, args Args) (*Result, error)

// errorPolicy declares, per operation, what a handler error becomes:
// a returned error (the default) or a soft {success:false} result, for
// operations whose callers treat "not found" or "failed verification" as an
// outcome rather than a fault.
type errorPolicy int

const (
	throwOnError errorPolicy = iota
	returnResult
)

// binding ties one tool descriptor to its policy and implementation. Modules
// declare their whole surface as a []binding.
type binding struct {
	tool    Tool
	policy  errorPolicy
	handler Handler
}

// Module is a family of related tools.
type Module interface {
	// Name identifies the module in config (tools.enabled).
	Name() string

	bindings() []binding
}

// Registry aggregates modules and dispatches invocations by tool name.
type Registry struct {
	log    *logging.Logger
	order  []string
	byName map[string]binding
}

// NewRegistry creates an empty registry. If log is nil, a discard logger is
// used.
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.New(nil, "silent", "json")
	}
	return &Registry{
		log:    log.Sub("tools"),
		byName: make(map[string]binding),
	}
}

// Register adds all of a module's tools. Duplicate tool names across modules
// are a programming error and are rejected.
func (r *Registry) Register(m Module) error {
	for _, b := range m.bindings() {
		if _, exists := r.byName[b.tool.Name]; exists {
			return fmt.Errorf("tools: duplicate tool name %q in module %q", b.tool.Name, m.Name())
		}
		r.byName[b.tool.Name] = b
		r.order = append(r.order, b.tool.Name)
	}
	r.log.Debug().Str("module", m.Name()).Int("count", len(m.bindings())).Msg("module registered")
	return nil
}

// Tools returns the full catalog in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].tool)
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.byName) }

// Execute dispatches a named invocation. Unknown names and missing required
// arguments fail before any handler runs. Handler errors surface according
// to the operation's declared policy.
func (r *Registry) Execute(ctx context.Context, name string, rawArgs map[string]any) (*Result, error) {
	b, okName := r.byName[name]
	if !okName {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	if missing := missingRequired(b.tool.InputSchema, rawArgs); len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required arguments: %s", name, strings.Join(missing, ", "))
	}

	start := time.Now()
	result, err := b.handler(ctx, Args(rawArgs))
	r.log.Info().
		Str("tool", name).
		Dur("duration", time.Since(start)).
		Bool("ok", err == nil).
		Msg("tool executed")

	if err != nil {
		if b.policy == returnResult {
			return &Result{Success: false, Message: err.Error()}, nil
		}
		return nil, err
	}
	return result, nil
}

func missingRequired(s InputSchema, args map[string]any) []string {
	var missing []string
	for _, key := range s.Required {
		v, present := args[key]
		if !present || v == nil {
			missing = append(missing, key)
			continue
		}
		if str, isStr := v.(string); isStr && str == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
