package todoagent

import "context"

// Tool is an action the model can ask for by name.
//
// I is decoded from the arguments the model supplies (a JSON round trip, so struct fields
// need json tags). O is whatever the tool produces; toolchains render it into the observation
// fed back to the model, so tools never format for the model themselves.
type Tool[I, O any] interface {
	Name() string
	Description() string

	// ParameterSchema is a JSON Schema object describing I, or nil when the tool takes no
	// arguments.
	ParameterSchema() map[string]any

	Call(ctx context.Context, input I) (O, error)
}

// ToolFunc is a Tool backed by a plain function.
type ToolFunc[I, O any] struct {
	name        string
	description string
	schema      map[string]any
	fn          func(ctx context.Context, input I) (O, error)
}

// NewToolFunc wraps fn as a Tool.
func NewToolFunc[I, O any](
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, input I) (O, error),
) *ToolFunc[I, O] {
	return &ToolFunc[I, O]{name: name, description: description, schema: schema, fn: fn}
}

func (t *ToolFunc[I, O]) Name() string                    { return t.name }
func (t *ToolFunc[I, O]) Description() string             { return t.description }
func (t *ToolFunc[I, O]) ParameterSchema() map[string]any { return t.schema }

// Call runs the wrapped function.
func (t *ToolFunc[I, O]) Call(ctx context.Context, input I) (O, error) {
	return t.fn(ctx, input)
}
