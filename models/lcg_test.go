package models

import (
	"context"
	"errors"
	"testing"

	"github.com/rickchristie/todoagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// stubLLM is an llms.Model returning a canned response.
type stubLLM struct {
	resp     *llms.ContentResponse
	err      error
	options  llms.CallOptions
	messages []llms.MessageContent
}

func (s *stubLLM) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	s.messages = messages
	for _, opt := range options {
		opt(&s.options)
	}
	return s.resp, s.err
}

func (s *stubLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}

func TestLCGWrapper_GenerateContent(t *testing.T) {
	type input struct {
		resp *llms.ContentResponse
		err  error
	}

	type expected struct {
		content      string
		inputTokens  int
		outputTokens int
		totalTokens  int
		toolCalls    int
		errIs        error
	}

	providerErr := errors.New("401 unauthorized")

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "openai token keys",
			input: input{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
				Content: "Final Answer: ok",
				GenerationInfo: map[string]any{
					"PromptTokens":     10,
					"CompletionTokens": 5,
					"TotalTokens":      15,
				},
			}}}},
			expected: expected{content: "Final Answer: ok", inputTokens: 10, outputTokens: 5, totalTokens: 15},
		},
		{
			name: "anthropic style keys and computed total",
			input: input{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
				Content: "hi",
				GenerationInfo: map[string]any{
					"InputTokens":  int64(7),
					"OutputTokens": float64(3),
				},
			}}}},
			expected: expected{content: "hi", inputTokens: 7, outputTokens: 3, totalTokens: 10},
		},
		{
			name: "tool calls are carried over",
			input: input{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
				ToolCalls: []llms.ToolCall{{
					ID:           "call_1",
					Type:         "function",
					FunctionCall: &llms.FunctionCall{Name: "list_items", Arguments: "{}"},
				}},
			}}}},
			expected: expected{toolCalls: 1},
		},
		{
			name:     "provider error",
			input:    input{err: providerErr},
			expected: expected{errIs: providerErr},
		},
		{
			name:     "no choices",
			input:    input{resp: &llms.ContentResponse{}},
			expected: expected{errIs: todoagent.ErrEmptyResponse},
		},
		{
			name:     "nil response",
			input:    input{},
			expected: expected{errIs: todoagent.ErrEmptyResponse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewLCGWrapper(&stubLLM{resp: tt.input.resp, err: tt.input.err}).
				WithModelName("gpt-test")
			ctx := context.Background()
			execCtx := todoagent.NewExecutionContext(ctx, "test", todoagent.NewConversation("x"))

			resp, err := model.GenerateContent(ctx, execCtx, []llms.MessageContent{
				llms.TextParts(llms.ChatMessageTypeHuman, "x"),
			})

			stats := execCtx.Stats()
			assert.Equal(t, int64(1), stats.GetCounter(todoagent.KeyModelCalls))

			if tt.expected.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expected.errIs)
				var callErr *todoagent.ModelCallError
				require.ErrorAs(t, err, &callErr)
				assert.Equal(t, "gpt-test", callErr.Model)
				assert.Nil(t, resp)
				assert.Equal(t, int64(1), stats.GetCounter(todoagent.KeyModelCallErrors))
				return
			}

			require.NoError(t, err)
			choice := resp.FirstChoice()
			require.NotNil(t, choice)
			assert.Equal(t, tt.expected.content, choice.Content)
			assert.Len(t, choice.ToolCalls, tt.expected.toolCalls)
			assert.Equal(t, tt.expected.inputTokens, resp.Info.InputTokens)
			assert.Equal(t, tt.expected.outputTokens, resp.Info.OutputTokens)
			assert.Equal(t, tt.expected.totalTokens, resp.Info.TotalTokens)
			assert.Equal(t, int64(tt.expected.inputTokens), stats.GetCounter(todoagent.KeyInputTokens))
			assert.Equal(t, int64(tt.expected.outputTokens), stats.GetCounter(todoagent.KeyOutputTokens))
		})
	}
}

func TestLCGWrapper_PassesCallOptions(t *testing.T) {
	stub := &stubLLM{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "x"}}}}
	model := NewLCGWrapper(stub)

	_, err := model.GenerateContent(
		context.Background(),
		nil,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, "x")},
		llms.WithTemperature(0.2),
	)

	require.NoError(t, err)
	assert.Equal(t, 0.2, stub.options.Temperature)
	assert.Len(t, stub.messages, 1)
	assert.Same(t, stub, model.Unwrap())
}
