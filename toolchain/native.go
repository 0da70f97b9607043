package toolchain

import (
	"encoding/json"
	"strings"

	"github.com/rickchristie/todoagent"
	"github.com/tmc/langchaingo/llms"
)

// Native executes structured tool calls returned by models that support function calling.
type Native struct {
	registry
}

// NewNative creates an empty Native toolchain.
func NewNative() *Native {
	return &Native{registry: newRegistry()}
}

// RegisterTool adds a tool. It panics if tool is not a Tool[I, O] or its name is taken.
// Returns self for chaining.
func (c *Native) RegisterTool(tool any) *Native {
	c.register(tool)
	return c
}

// Definitions returns the function definitions to pass with llms.WithTools.
func (c *Native) Definitions() []llms.Tool {
	defs := make([]llms.Tool, 0, len(c.tools))
	for _, t := range c.tools {
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  c.schemas[t.Name()].Raw(),
			},
		})
	}
	return defs
}

// Execute runs one tool call and returns the response to append to the conversation.
//
// Arguments that are not a JSON object are treated as no arguments. An unknown tool name
// runs nothing and answers with todoagent.NoActionObservation. A tool error is returned along
// with its "Error: ..." response.
func (c *Native) Execute(
	execCtx *todoagent.ExecutionContext,
	call llms.ToolCall,
) (llms.ToolCallResponse, error) {
	var name, rawArgs string
	if call.FunctionCall != nil {
		name = strings.TrimSpace(call.FunctionCall.Name)
		rawArgs = call.FunctionCall.Arguments
	}

	args := decodeArgs(rawArgs)
	resp := llms.ToolCallResponse{ToolCallID: call.ID, Name: name}

	meta, ok := c.lookup(name)
	if !ok {
		resp.Content = c.skip(execCtx, name, args)
		return resp, nil
	}

	observation, err := c.invoke(execCtx, meta, args)
	resp.Content = observation
	return resp, err
}

func decodeArgs(raw string) map[string]any {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{}
	}
	return args
}
