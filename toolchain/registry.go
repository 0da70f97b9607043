package toolchain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/schema"
	"gopkg.in/yaml.v3"
)

// registry is the tool table shared by Text and Native.
type registry struct {
	tools   []*ToolMeta
	byName  map[string]*ToolMeta
	schemas map[string]*schema.Schema
}

func newRegistry() registry {
	return registry{
		byName:  make(map[string]*ToolMeta),
		schemas: make(map[string]*schema.Schema),
	}
}

// register panics on anything that is not a Tool[I, O], on a duplicate name, and on a
// parameter schema that does not compile. All three are programming errors.
func (r *registry) register(tool any) {
	meta, err := GetToolMeta(tool)
	if err != nil {
		panic(fmt.Sprintf("toolchain: cannot register %T: %v", tool, err))
	}
	if meta.Name() == "" {
		panic(fmt.Sprintf("toolchain: tool %T has an empty name", tool))
	}
	if _, dup := r.byName[meta.Name()]; dup {
		panic(fmt.Sprintf("toolchain: tool %q registered twice", meta.Name()))
	}

	r.tools = append(r.tools, meta)
	r.byName[meta.Name()] = meta
	r.schemas[meta.Name()] = schema.MustCompile(meta.Schema())
}

// Names returns the registered tool names in registration order.
func (r *registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name()
	}
	return names
}

func (r *registry) lookup(name string) (*ToolMeta, bool) {
	meta, ok := r.byName[name]
	return meta, ok
}

// skip records an action that ran no tool and returns NoActionObservation.
func (r *registry) skip(execCtx *todoagent.ExecutionContext, name string, args map[string]any) string {
	if execCtx != nil {
		execCtx.FireBeforeToolCall(todoagent.BeforeToolCallEvent{ToolName: name, Args: args})
		execCtx.FireAfterToolCall(todoagent.AfterToolCallEvent{
			ToolName:    name,
			Args:        args,
			Observation: todoagent.NoActionObservation,
			Skipped:     true,
		})
	}
	return todoagent.NoActionObservation
}

// invoke runs a registered tool and renders its output as the observation. A tool error is
// rendered as "Error: <err>" and also returned.
func (r *registry) invoke(
	execCtx *todoagent.ExecutionContext,
	meta *ToolMeta,
	args map[string]any,
) (string, error) {
	ctx := context.Background()
	if execCtx != nil {
		ctx = execCtx.Context()
		execCtx.FireBeforeToolCall(todoagent.BeforeToolCallEvent{ToolName: meta.Name(), Args: args})
	}

	start := time.Now()
	output, err := CallToolReflect(ctx, meta.Tool(), args)
	duration := time.Since(start)

	var observation string
	if err != nil {
		err = fmt.Errorf("tool %s: %w", meta.Name(), err)
		observation = "Error: " + err.Error()
	} else {
		observation = renderOutput(output)
	}

	if execCtx != nil {
		execCtx.FireAfterToolCall(todoagent.AfterToolCallEvent{
			ToolName:    meta.Name(),
			Args:        args,
			Output:      output,
			Observation: observation,
			Duration:    duration,
			Error:       err,
		})
	}
	return observation, err
}

// renderOutput returns string outputs as-is and renders anything else as YAML.
func renderOutput(output any) string {
	switch v := output.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	}
	out, err := yaml.Marshal(output)
	if err != nil {
		return fmt.Sprintf("%v", output)
	}
	return strings.TrimRight(string(out), "\n")
}
