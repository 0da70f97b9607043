package toolcall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/hooks"
	"github.com/rickchristie/todoagent/internal/tt"
	"github.com/rickchristie/todoagent/todo"
	"github.com/rickchristie/todoagent/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func newTestAgent(model todoagent.Model, list *todo.List) *Agent {
	native := toolchain.NewNative()
	for _, tool := range todo.NewTools(list) {
		native.RegisterTool(tool)
	}
	return NewAgent(model, native).
		WithTimeProvider(todoagent.NewFixedTimeProvider(
			time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC),
		))
}

func newExecCtx(task string) (*todoagent.ExecutionContext, *tt.HookRecorder) {
	rec := tt.NewHookRecorder()
	execCtx := todoagent.NewExecutionContext(context.Background(), "test", todoagent.NewConversation(task))
	execCtx.SetHookFirer(hooks.NewRegistry().Register(rec))
	return execCtx, rec
}

func TestAgent_Next(t *testing.T) {
	type input struct {
		seed    []string
		content string
		calls   []llms.ToolCall
	}

	type expected struct {
		action      todoagent.LoopAction
		observation string
		result      string
		items       []string
		toolMsgs    int
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "single tool call",
			input: input{calls: []llms.ToolCall{tt.ToolCall("c1", "add_item", `{"text":"buy milk"}`)}},
			expected: expected{
				action:      todoagent.LAContinue,
				observation: `Added "buy milk" to your to-do list.`,
				items:       []string{"buy milk"},
				toolMsgs:    1,
			},
		},
		{
			name: "several calls run in listed order",
			input: input{
				seed: []string{"old"},
				calls: []llms.ToolCall{
					tt.ToolCall("c1", "add_item", `{"text":"a"}`),
					tt.ToolCall("c2", "remove_item", `{"text":"old"}`),
					tt.ToolCall("c3", "list_items", `{}`),
				},
			},
			expected: expected{
				action: todoagent.LAContinue,
				observation: `Added "a" to your to-do list.` + "\n" +
					`Removed "old" from your to-do list.` + "\n" +
					"Here are your current to-do items:\n- a",
				items:    []string{"a"},
				toolMsgs: 3,
			},
		},
		{
			name:  "unknown tool is a no-op",
			input: input{calls: []llms.ToolCall{tt.ToolCall("c1", "wipe", `{}`)}},
			expected: expected{
				action:      todoagent.LAContinue,
				observation: todoagent.NoActionObservation,
				items:       []string{},
				toolMsgs:    1,
			},
		},
		{
			name:  "final answer marker is stripped",
			input: input{content: "Thought: all done\nFinal Answer: You have 1 item."},
			expected: expected{
				action: todoagent.LATerminate,
				result: "You have 1 item.",
				items:  []string{},
			},
		},
		{
			name:  "plain reply is the answer",
			input: input{content: "  Your list is empty.  "},
			expected: expected{
				action: todoagent.LATerminate,
				result: "Your list is empty.",
				items:  []string{},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list := todo.NewList()
			for _, s := range tc.input.seed {
				list.Add(s)
			}
			model := tt.NewMockModel().AddToolCallResponse(tc.input.content, tc.input.calls...)
			agent := newTestAgent(model, list)
			execCtx, _ := newExecCtx("do it")

			result, err := agent.Next(execCtx)

			require.NoError(t, err)
			assert.Equal(t, tc.expected.action, result.Action)
			assert.Equal(t, tc.expected.observation, result.Observation)
			assert.Equal(t, tc.expected.result, result.Result)
			assert.Equal(t, tc.expected.items, list.Items())

			history := execCtx.Data().GetMessages()
			require.Len(t, history, 2+tc.expected.toolMsgs)
			assert.Equal(t, llms.ChatMessageTypeAI, history[1].Role)
			for i, call := range tc.input.calls {
				msg := history[2+i]
				assert.Equal(t, llms.ChatMessageTypeTool, msg.Role)
				require.Len(t, msg.Parts, 1)
				resp, ok := msg.Parts[0].(llms.ToolCallResponse)
				require.True(t, ok)
				assert.Equal(t, call.ID, resp.ToolCallID)
				assert.Equal(t, call.FunctionCall.Name, resp.Name)
			}
		})
	}
}

func TestAgent_Next_SendsToolDefinitions(t *testing.T) {
	model := tt.NewMockModel().AddResponse("Final Answer: ok")
	agent := newTestAgent(model, todo.NewList())
	execCtx, _ := newExecCtx("list")

	_, err := agent.Next(execCtx)
	require.NoError(t, err)

	require.Len(t, model.CapturedOptions, 1)
	opts := model.CapturedOptions[0]
	require.Len(t, opts.Tools, 3)
	assert.Equal(t, "add_item", opts.Tools[0].Function.Name)
	assert.Equal(t, DefaultTemperature, opts.Temperature)

	system := todoagent.TextOf(model.CapturedMessages[0][0])
	assert.Contains(t, system, "- remove_item: Remove an existing item")
	assert.Contains(t, system, "Today is Tuesday, January 20, 2026.")
}

func TestAgent_Next_AIMessageKeepsToolCalls(t *testing.T) {
	call := tt.ToolCall("c1", "list_items", `{}`)
	model := tt.NewMockModel().AddToolCallResponse("Let me check.", call)
	agent := newTestAgent(model, todo.NewList())
	execCtx, _ := newExecCtx("list")

	_, err := agent.Next(execCtx)
	require.NoError(t, err)

	ai := execCtx.Data().GetMessages()[1]
	require.Len(t, ai.Parts, 2)
	assert.Equal(t, llms.TextContent{Text: "Let me check."}, ai.Parts[0])
	assert.Equal(t, call, ai.Parts[1])
}

func TestAgent_Next_ModelError(t *testing.T) {
	providerErr := errors.New("rate limited")
	model := tt.NewMockModel().AddError(providerErr)
	agent := newTestAgent(model, todo.NewList())
	execCtx, _ := newExecCtx("x")

	_, err := agent.Next(execCtx)

	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
}

func TestAgent_WithTemperature(t *testing.T) {
	model := tt.NewMockModel().AddResponse("done")
	agent := newTestAgent(model, todo.NewList()).WithTemperature(0.5)
	execCtx, _ := newExecCtx("x")

	_, err := agent.Next(execCtx)

	require.NoError(t, err)
	assert.Equal(t, 0.5, model.CapturedOptions[0].Temperature)
}
