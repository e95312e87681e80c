package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler executes one tool invocation. Arguments arrive as the raw JSON the
// host runtime collected from the model.
type Handler func(ctx context.Context, rctx RuntimeContext, args json.RawMessage) (any, error)

// Tool pairs a declaration with its handler.
type Tool struct {
	Declaration FunctionDeclaration
	Handler     Handler
}

// Registry is the explicit operation table handed to the host runtime: name
// to declaration to handler, built once at startup. There is no global
// registration side channel.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		name := t.Declaration.Name
		if name == "" {
			return nil, fmt.Errorf("tool declaration is missing a name")
		}
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("duplicate tool name: %s", name)
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("tool %s has no handler", name)
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}
	return r, nil
}

// Declarations returns the declarations in registration order.
func (r *Registry) Declarations() []FunctionDeclaration {
	out := make([]FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Declaration)
	}
	return out
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Invoke runs the named tool against the given runtime context.
func (r *Registry) Invoke(ctx context.Context, rctx RuntimeContext, name string, args json.RawMessage) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return t.Handler(ctx, rctx, args)
}
