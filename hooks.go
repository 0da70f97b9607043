package todoagent

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe execution at fixed points. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register the value with hooks.Registry (or Session.RegisterHook)
//
// Hooks are called in registration order and do not return errors. For paired hooks
// (Before/After), the After hook is always called if the Before hook was called.
//
//   - Execution lifecycle: [BeforeExecutionHook], [AfterExecutionHook]
//   - Iteration lifecycle: [BeforeIterationHook], [AfterIterationHook]
//   - Model calls: [BeforeModelCallHook], [AfterModelCallHook]
//   - Tool calls: [BeforeToolCallHook], [AfterToolCallHook]
//   - Errors: [ErrorHook]
// -----------------------------------------------------------------------------

// BeforeExecutionHook is called once before the first iteration of a user request.
type BeforeExecutionHook interface {
	OnBeforeExecution(ctx context.Context, execCtx *ExecutionContext, event BeforeExecutionEvent)
}

// AfterExecutionHook is called once after execution terminates for any reason.
type AfterExecutionHook interface {
	OnAfterExecution(ctx context.Context, execCtx *ExecutionContext, event AfterExecutionEvent)
}

// BeforeIterationHook is called before each AgentLoop.Next.
type BeforeIterationHook interface {
	OnBeforeIteration(ctx context.Context, execCtx *ExecutionContext, event BeforeIterationEvent)
}

// AfterIterationHook is called after each successful AgentLoop.Next.
type AfterIterationHook interface {
	OnAfterIteration(ctx context.Context, execCtx *ExecutionContext, event AfterIterationEvent)
}

// BeforeModelCallHook is called before each model request.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, execCtx *ExecutionContext, event BeforeModelCallEvent)
}

// AfterModelCallHook is called after each model request, including failed ones.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, execCtx *ExecutionContext, event AfterModelCallEvent)
}

// BeforeToolCallHook is called before a tool runs.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, execCtx *ExecutionContext, event BeforeToolCallEvent)
}

// AfterToolCallHook is called after a tool ran, or after an action was skipped as a no-op.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, execCtx *ExecutionContext, event AfterToolCallEvent)
}

// ErrorHook is called for errors worth reporting, fatal or not.
type ErrorHook interface {
	OnError(ctx context.Context, execCtx *ExecutionContext, event ErrorEvent)
}

// HookFirer dispatches model, tool and error events. The executor installs one on the
// ExecutionContext so models and toolchains can fire hooks without knowing the registry.
type HookFirer interface {
	FireBeforeModelCall(ctx context.Context, execCtx *ExecutionContext, event BeforeModelCallEvent)
	FireAfterModelCall(ctx context.Context, execCtx *ExecutionContext, event AfterModelCallEvent)
	FireBeforeToolCall(ctx context.Context, execCtx *ExecutionContext, event BeforeToolCallEvent)
	FireAfterToolCall(ctx context.Context, execCtx *ExecutionContext, event AfterToolCallEvent)
	FireError(ctx context.Context, execCtx *ExecutionContext, event ErrorEvent)
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// BeforeExecutionEvent carries the user request.
type BeforeExecutionEvent struct {
	Task string
}

// AfterExecutionEvent carries the outcome of the request.
type AfterExecutionEvent struct {
	TerminationReason TerminationReason
	Result            string
	Error             error
	Duration          time.Duration
}

// BeforeIterationEvent carries the 1-indexed iteration about to run.
type BeforeIterationEvent struct {
	Iteration int
}

// AfterIterationEvent carries the iteration result.
type AfterIterationEvent struct {
	Iteration int
	Result    *AgentLoopResult
	Duration  time.Duration
}

// BeforeModelCallEvent carries the request about to be sent.
type BeforeModelCallEvent struct {
	Model   string
	Request []llms.MessageContent
}

// AfterModelCallEvent carries the model response or error.
type AfterModelCallEvent struct {
	Model    string
	Request  []llms.MessageContent
	Response *ContentResponse
	Duration time.Duration
	Error    error
}

// BeforeToolCallEvent carries the tool name and the arguments it will receive.
type BeforeToolCallEvent struct {
	ToolName string
	Args     map[string]any
}

// AfterToolCallEvent carries the tool result. Observation is the text fed back to the model.
// Skipped is true when the action was a no-op or named an unknown tool.
type AfterToolCallEvent struct {
	ToolName    string
	Args        map[string]any
	Output      any
	Observation string
	Skipped     bool
	Duration    time.Duration
	Error       error
}

// ErrorEvent carries an error and the iteration it happened in.
type ErrorEvent struct {
	Iteration int
	Err       error
	// Fatal is true when the error terminated the execution.
	Fatal bool
}
