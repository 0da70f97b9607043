package todoagent

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Model sends a conversation to a language model and returns its reply.
//
// Implementations fire BeforeModelCall and AfterModelCall through execCtx, which also keeps
// the token counters in ExecutionStats current. A nil execCtx skips both.
type Model interface {
	GenerateContent(
		ctx context.Context,
		execCtx *ExecutionContext,
		messages []llms.MessageContent,
		options ...llms.CallOption,
	) (*ContentResponse, error)
}

// ContentResponse is one model reply.
type ContentResponse struct {
	Choices []*ContentChoice
	Info    *GenerationInfo
}

// ContentChoice is a single candidate reply. Agent loops only read the first one.
type ContentChoice struct {
	Content    string
	StopReason string

	// ToolCalls lists native tool calls in the order the model gave them.
	ToolCalls []llms.ToolCall
}

// FirstChoice returns the first choice, or nil if the response carries none.
func (r *ContentResponse) FirstChoice() *ContentChoice {
	if r == nil || len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0]
}

// GenerationInfo is usage metadata with provider-specific token keys normalized.
type GenerationInfo struct {
	InputTokens  int
	OutputTokens int

	// TotalTokens is reported by the provider, or InputTokens + OutputTokens otherwise.
	TotalTokens int

	Duration time.Duration

	// Raw is the provider's GenerationInfo map as returned.
	Raw map[string]any
}
