package models

import (
	"context"
	"time"

	"github.com/rickchristie/todoagent"
	"github.com/tmc/langchaingo/llms"
)

// LCGWrapper wraps an llms.Model and implements todoagent.Model.
// It normalizes token usage across providers and fires model hooks when an ExecutionContext
// is provided.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-4.1-mini")
//
//	// With ExecutionContext (hooks and stats)
//	response, err := model.GenerateContent(ctx, execCtx, messages)
//
//	// Without ExecutionContext
//	response, err := model.GenerateContent(ctx, nil, messages)
type LCGWrapper struct {
	model     llms.Model
	modelName string // reported in events and errors
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{
		model: model,
	}
}

// WithModelName sets the model name reported in events and errors.
// Returns the model for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// ModelName returns the name set with WithModelName.
func (m *LCGWrapper) ModelName() string {
	return m.modelName
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// GenerateContent implements todoagent.Model.
//
// Provider failures are returned as *todoagent.ModelCallError. A response without choices
// is a failure too, wrapping todoagent.ErrEmptyResponse.
func (m *LCGWrapper) GenerateContent(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*todoagent.ContentResponse, error) {
	if execCtx != nil {
		execCtx.FireBeforeModelCall(todoagent.BeforeModelCallEvent{
			Model:   m.modelName,
			Request: messages,
		})
	}

	startTime := time.Now()
	lcgResponse, err := m.model.GenerateContent(ctx, messages, options...)
	duration := time.Since(startTime)

	var response *todoagent.ContentResponse
	switch {
	case err != nil:
		err = &todoagent.ModelCallError{Model: m.modelName, Err: err}
	case lcgResponse == nil || len(lcgResponse.Choices) == 0:
		err = &todoagent.ModelCallError{Model: m.modelName, Err: todoagent.ErrEmptyResponse}
	default:
		response = convertLCGResponse(lcgResponse, duration)
	}

	if execCtx != nil {
		execCtx.FireAfterModelCall(todoagent.AfterModelCallEvent{
			Model:    m.modelName,
			Request:  messages,
			Response: response,
			Duration: duration,
			Error:    err,
		})
	}

	return response, err
}

// convertLCGResponse converts a langchaingo ContentResponse to the todoagent format.
func convertLCGResponse(
	lcgResponse *llms.ContentResponse,
	duration time.Duration,
) *todoagent.ContentResponse {
	response := &todoagent.ContentResponse{
		Choices: make([]*todoagent.ContentChoice, len(lcgResponse.Choices)),
		Info:    &todoagent.GenerationInfo{Duration: duration},
	}

	for i, choice := range lcgResponse.Choices {
		response.Choices[i] = &todoagent.ContentChoice{
			Content:    choice.Content,
			StopReason: choice.StopReason,
			ToolCalls:  choice.ToolCalls,
		}
	}

	if len(lcgResponse.Choices) > 0 && lcgResponse.Choices[0].GenerationInfo != nil {
		rawInfo := lcgResponse.Choices[0].GenerationInfo
		response.Info.Raw = rawInfo
		response.Info.InputTokens = firstInt(rawInfo, "PromptTokens", "InputTokens", "input_tokens")
		response.Info.OutputTokens = firstInt(
			rawInfo, "CompletionTokens", "OutputTokens", "output_tokens",
		)
		response.Info.TotalTokens = firstInt(rawInfo, "TotalTokens", "total_tokens")
		if response.Info.TotalTokens == 0 {
			response.Info.TotalTokens = response.Info.InputTokens + response.Info.OutputTokens
		}
	}

	return response
}

// firstInt returns the first positive integer found under keys. Providers disagree on naming:
// OpenAI reports PromptTokens/CompletionTokens, others InputTokens/OutputTokens.
func firstInt(m map[string]any, keys ...string) int {
	for _, key := range keys {
		if v := getIntFromMap(m, key); v > 0 {
			return v
		}
	}
	return 0
}

func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGWrapper implements todoagent.Model.
var _ todoagent.Model = (*LCGWrapper)(nil)
