// Package tt holds test doubles shared by the package tests.
package tt

import (
	"context"
	"fmt"
	"time"

	"github.com/rickchristie/todoagent"
	"github.com/tmc/langchaingo/llms"
)

// DefaultResponse is returned once the queued responses run out.
const DefaultResponse = "Final Answer: done"

// -----------------------------------------------------------------------------
// MockModel - implements todoagent.Model with proper hook firing
// -----------------------------------------------------------------------------

// MockModel is a configurable mock that implements todoagent.Model.
// It fires BeforeModelCall and AfterModelCall the way models.LCGWrapper does.
type MockModel struct {
	name      string
	responses []*todoagent.ContentResponse
	errors    []error
	fallback  *todoagent.ContentResponse
	callCount int

	// CapturedMessages stores the messages passed to each GenerateContent call.
	CapturedMessages [][]llms.MessageContent

	// CapturedOptions stores the applied call options of each GenerateContent call.
	CapturedOptions []llms.CallOptions
}

// NewMockModel creates a new MockModel with the default name "test-model".
func NewMockModel() *MockModel {
	return &MockModel{
		name:     "test-model",
		fallback: textResponse(DefaultResponse, 10, 5),
	}
}

// WithName sets the model name used in events.
func (m *MockModel) WithName(name string) *MockModel {
	m.name = name
	return m
}

// WithFallback sets the content returned once the queue is exhausted.
func (m *MockModel) WithFallback(content string) *MockModel {
	m.fallback = textResponse(content, 10, 5)
	return m
}

// AddResponse queues a text response.
func (m *MockModel) AddResponse(content string) *MockModel {
	return m.AddRawResponse(textResponse(content, 10, 5))
}

// AddToolCallResponse queues a response carrying tool calls and optional text.
func (m *MockModel) AddToolCallResponse(content string, calls ...llms.ToolCall) *MockModel {
	resp := textResponse(content, 10, 5)
	resp.Choices[0].ToolCalls = calls
	return m.AddRawResponse(resp)
}

// AddRawResponse queues a raw ContentResponse.
func (m *MockModel) AddRawResponse(resp *todoagent.ContentResponse) *MockModel {
	m.responses = append(m.responses, resp)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	m.responses = append(m.responses, nil)
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times GenerateContent has been called.
func (m *MockModel) CallCount() int {
	return m.callCount
}

// GenerateContent implements todoagent.Model.
func (m *MockModel) GenerateContent(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	messages []llms.MessageContent,
	opts ...llms.CallOption,
) (*todoagent.ContentResponse, error) {
	idx := m.callCount
	m.callCount++

	var applied llms.CallOptions
	for _, opt := range opts {
		opt(&applied)
	}
	m.CapturedMessages = append(m.CapturedMessages, messages)
	m.CapturedOptions = append(m.CapturedOptions, applied)

	if execCtx != nil {
		execCtx.FireBeforeModelCall(todoagent.BeforeModelCallEvent{Model: m.name, Request: messages})
	}

	start := time.Now()
	resp := m.fallback
	var err error
	if idx < len(m.responses) {
		resp, err = m.responses[idx], m.errors[idx]
	}
	if err != nil {
		err = &todoagent.ModelCallError{Model: m.name, Err: err}
		resp = nil
	}

	if execCtx != nil {
		execCtx.FireAfterModelCall(todoagent.AfterModelCallEvent{
			Model:    m.name,
			Request:  messages,
			Response: resp,
			Duration: time.Since(start),
			Error:    err,
		})
	}

	return resp, err
}

var _ todoagent.Model = (*MockModel)(nil)

func textResponse(content string, inputTokens, outputTokens int) *todoagent.ContentResponse {
	return &todoagent.ContentResponse{
		Choices: []*todoagent.ContentChoice{{Content: content}},
		Info: &todoagent.GenerationInfo{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
		},
	}
}

// ToolCall builds a function tool call with JSON arguments.
func ToolCall(id, name, args string) llms.ToolCall {
	return llms.ToolCall{
		ID:   id,
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

// ReActStep renders a Thought / Action / Action Input response.
func ReActStep(thought, action, input string) string {
	return fmt.Sprintf("Thought: %s\nAction: %s\nAction Input: %s", thought, action, input)
}
