package toolchain

import (
	"fmt"
	"strings"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/format"
)

// Text executes actions written as an action name plus one free-text input, the way the
// ReAct grammar expresses them:
//
//	Action: add_item
//	Action Input: "buy milk"
//
// The cleaned input is bound to the tool's first required parameter. Tools without required
// parameters ignore the input.
type Text struct {
	registry
}

// NewText creates an empty Text toolchain.
func NewText() *Text {
	return &Text{registry: newRegistry()}
}

// RegisterTool adds a tool. It panics if tool is not a Tool[I, O] or its name is taken.
// Returns self for chaining.
func (c *Text) RegisterTool(tool any) *Text {
	c.register(tool)
	return c
}

// AvailableToolsPrompt lists the tools one per line, for the system prompt:
//
//	- add_item(text): Add a new item to the to-do list.
//	- list_items(): Show all items currently on the to-do list.
func (c *Text) AvailableToolsPrompt() string {
	var sb strings.Builder
	for i, t := range c.tools {
		if i > 0 {
			sb.WriteString("\n")
		}
		params := c.schemas[t.Name()].Required()
		fmt.Fprintf(&sb, "- %s(%s): %s", t.Name(), strings.Join(params, ", "), t.Description())
	}
	return sb.String()
}

// Execute runs the named action with input and returns the observation.
//
// An empty action, "none", or an unknown tool name runs nothing and returns
// todoagent.NoActionObservation with a nil error. A tool error is returned along with its
// "Error: ..." observation; callers feed the observation back and keep going.
func (c *Text) Execute(
	execCtx *todoagent.ExecutionContext,
	action string,
	input string,
) (string, error) {
	action = strings.TrimSpace(action)
	cleaned := format.CleanActionInput(input)

	meta, ok := c.lookup(action)
	if !ok || action == "" || strings.EqualFold(action, format.NoneAction) {
		return c.skip(execCtx, action, map[string]any{"input": cleaned}), nil
	}

	args := map[string]any{}
	if required := c.schemas[meta.Name()].Required(); len(required) > 0 {
		args[required[0]] = cleaned
	}

	return c.invoke(execCtx, meta, args)
}
