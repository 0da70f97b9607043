// Package schema builds the JSON Schemas that describe tool parameters.
//
// # Quick Start
//
//	tool := todoagent.NewToolFunc(
//	    "add_item",
//	    "Add a new item to the to-do list",
//	    schema.Object(map[string]*schema.Property{
//	        "text": schema.String("The description of the task to add"),
//	    }, "text"), // "text" is required
//	    addFunc,
//	)
//
// Toolchains call [Compile] when a tool is registered, so a malformed schema is caught before
// it is ever sent to the model. Arguments are not validated against the schema at call time.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled JSON Schema definition.
type Schema struct {
	raw      map[string]any
	required []string
}

// Raw returns the underlying map representation, suitable for tool definitions.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Required returns the names of the required properties in declaration order.
func (s *Schema) Required() []string {
	if s == nil {
		return nil
	}
	return s.required
}

// Compile checks that raw is a well-formed JSON Schema and returns it wrapped.
// A nil raw schema compiles to an empty object schema.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		raw = Object(nil)
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	if _, err := c.Compile("schema.json"); err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		required: requiredNames(raw),
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func requiredNames(raw map[string]any) []string {
	switch req := raw["required"].(type) {
	case []string:
		return req
	case []any:
		names := make([]string, 0, len(req))
		for _, r := range req {
			if name, ok := r.(string); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties.
// Pass property names as variadic arguments to mark them as required.
//
// Example:
//
//	// No parameters
//	schema.Object(nil)
//
//	// "text" is required
//	schema.Object(map[string]*schema.Property{
//	    "text": schema.String("Item text"),
//	}, "text")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	minLength   *int
	maxLength   *int
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}

	return m
}

// String creates a string property.
//
// Example:
//
//	schema.String("The description of the task")
//	schema.String("Title").MinLength(1).MaxLength(200)
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}
