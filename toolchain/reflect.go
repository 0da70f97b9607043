package toolchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ToolMeta holds metadata about a registered tool extracted via reflection.
type ToolMeta struct {
	name        string
	description string
	schema      map[string]any
	tool        any          // The actual tool (Tool[I, O])
	inputType   reflect.Type // The input type I
}

// Name returns the tool's name.
func (m *ToolMeta) Name() string { return m.name }

// Description returns the tool's description.
func (m *ToolMeta) Description() string { return m.description }

// Schema returns the tool's parameter schema.
func (m *ToolMeta) Schema() map[string]any { return m.schema }

// Tool returns the actual tool.
func (m *ToolMeta) Tool() any { return m.tool }

// GetToolMeta extracts metadata from a generic Tool[I, O] using reflection.
func GetToolMeta(tool any) (*ToolMeta, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}
	if toolVal.Kind() == reflect.Ptr && toolVal.IsNil() {
		return nil, errors.New("nil tool")
	}

	nameMethod := toolVal.MethodByName("Name")
	if !nameMethod.IsValid() {
		return nil, errors.New("tool does not have Name method")
	}
	descMethod := toolVal.MethodByName("Description")
	if !descMethod.IsValid() {
		return nil, errors.New("tool does not have Description method")
	}
	schemaMethod := toolVal.MethodByName("ParameterSchema")
	if !schemaMethod.IsValid() {
		return nil, errors.New("tool does not have ParameterSchema method")
	}

	inputType, err := callInputType(toolVal)
	if err != nil {
		return nil, err
	}

	var schema map[string]any
	if res := schemaMethod.Call(nil)[0]; !res.IsNil() {
		schema = res.Interface().(map[string]any)
	}

	return &ToolMeta{
		name:        nameMethod.Call(nil)[0].String(),
		description: descMethod.Call(nil)[0].String(),
		schema:      schema,
		tool:        tool,
		inputType:   inputType,
	}, nil
}

// callInputType returns I from Call(ctx context.Context, input I) (O, error).
func callInputType(toolVal reflect.Value) (reflect.Type, error) {
	callMethod := toolVal.MethodByName("Call")
	if !callMethod.IsValid() {
		return nil, errors.New("tool does not have Call method")
	}
	callType := callMethod.Type()
	if callType.NumIn() != 2 || callType.NumOut() != 2 {
		return nil, fmt.Errorf(
			"Call method has unexpected signature: expected 2 params and 2 results, got %d and %d",
			callType.NumIn(),
			callType.NumOut(),
		)
	}
	return callType.In(1), nil
}

// TransformArgsReflect converts raw args to the tool's typed input by a JSON round trip.
// Unknown keys are ignored and missing keys leave the zero value.
//
// Returns the typed input as `any`. The actual type is the tool's input type I.
func TransformArgsReflect(tool any, args map[string]any) (any, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}
	inputType, err := callInputType(toolVal)
	if err != nil {
		return nil, err
	}

	var inputVal reflect.Value
	if inputType.Kind() == reflect.Ptr {
		inputVal = reflect.New(inputType.Elem())
	} else {
		inputVal = reflect.New(inputType)
	}

	if args == nil {
		args = map[string]any{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}
	if err := json.Unmarshal(argsJSON, inputVal.Interface()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal args into input type: %w", err)
	}

	if inputType.Kind() == reflect.Ptr {
		return inputVal.Interface(), nil
	}
	return inputVal.Elem().Interface(), nil
}

// CallToolWithTypedInputReflect calls a generic Tool[I, O] with already-typed input and
// returns its output.
func CallToolWithTypedInputReflect(ctx context.Context, tool any, typedInput any) (any, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}
	callMethod := toolVal.MethodByName("Call")
	if !callMethod.IsValid() {
		return nil, errors.New("tool does not have Call method")
	}

	results := callMethod.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(typedInput),
	})

	if errVal := results[1]; !errVal.IsNil() {
		return nil, errVal.Interface().(error)
	}
	return results[0].Interface(), nil
}

// CallToolReflect calls a generic Tool[I, O] with raw args. It combines
// TransformArgsReflect and CallToolWithTypedInputReflect.
func CallToolReflect(ctx context.Context, tool any, args map[string]any) (any, error) {
	typedInput, err := TransformArgsReflect(tool, args)
	if err != nil {
		return nil, err
	}
	return CallToolWithTypedInputReflect(ctx, tool, typedInput)
}
