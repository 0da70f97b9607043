package todoagent

import (
	"context"
	"sync"
	"time"
)

// ExecutionContext is the ambient context passed through one user request. It carries the
// Conversation, the iteration counter, stats, the hook firer and the termination outcome.
//
// All framework components (Model, ToolChain, AgentLoop) receive the ExecutionContext, so
// hooks and stats work without manual wiring.
type ExecutionContext struct {
	mu sync.RWMutex

	ctx  context.Context
	name string
	data LoopData

	iteration int
	stats     *ExecutionStats
	hookFirer HookFirer

	startTime time.Time
	endTime   time.Time

	terminationReason TerminationReason
	finalResult       string
	err               error
}

// NewExecutionContext creates an ExecutionContext for one request.
func NewExecutionContext(ctx context.Context, name string, data LoopData) *ExecutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ExecutionContext{
		ctx:       ctx,
		name:      name,
		data:      data,
		stats:     NewExecutionStats(),
		startTime: time.Now(),
	}
}

// Context returns the underlying context.Context.
func (ec *ExecutionContext) Context() context.Context {
	return ec.ctx
}

// Name returns the name of this execution, typically the session id.
func (ec *ExecutionContext) Name() string {
	return ec.name
}

// Data returns the LoopData of this execution.
func (ec *ExecutionContext) Data() LoopData {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.data
}

// Stats returns the live stats of this execution.
func (ec *ExecutionContext) Stats() *ExecutionStats {
	return ec.stats
}

// -----------------------------------------------------------------------------
// Iteration Management
// -----------------------------------------------------------------------------

// Iteration returns the current iteration number (1-indexed), or 0 before the first one.
func (ec *ExecutionContext) Iteration() int {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.iteration
}

// StartIteration begins a new iteration. Called by the executor.
func (ec *ExecutionContext) StartIteration() int {
	ec.mu.Lock()
	ec.iteration++
	n := ec.iteration
	ec.mu.Unlock()
	ec.stats.incr(KeyIterations, 1)
	return n
}

// -----------------------------------------------------------------------------
// Hooks
// -----------------------------------------------------------------------------

// SetHookFirer installs the dispatcher used by the Fire* methods.
func (ec *ExecutionContext) SetHookFirer(firer HookFirer) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.hookFirer = firer
}

func (ec *ExecutionContext) firer() HookFirer {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.hookFirer
}

// FireBeforeModelCall dispatches a BeforeModelCallEvent and counts the call.
func (ec *ExecutionContext) FireBeforeModelCall(event BeforeModelCallEvent) {
	ec.stats.IncrCounter(KeyModelCalls, 1)
	if f := ec.firer(); f != nil {
		f.FireBeforeModelCall(ec.ctx, ec, event)
	}
}

// FireAfterModelCall dispatches an AfterModelCallEvent and records token usage.
func (ec *ExecutionContext) FireAfterModelCall(event AfterModelCallEvent) {
	if event.Error != nil {
		ec.stats.IncrCounter(KeyModelCallErrors, 1)
	}
	if event.Response != nil && event.Response.Info != nil {
		ec.stats.IncrCounter(KeyInputTokens, int64(event.Response.Info.InputTokens))
		ec.stats.IncrCounter(KeyOutputTokens, int64(event.Response.Info.OutputTokens))
	}
	if f := ec.firer(); f != nil {
		f.FireAfterModelCall(ec.ctx, ec, event)
	}
}

// FireBeforeToolCall dispatches a BeforeToolCallEvent.
func (ec *ExecutionContext) FireBeforeToolCall(event BeforeToolCallEvent) {
	if f := ec.firer(); f != nil {
		f.FireBeforeToolCall(ec.ctx, ec, event)
	}
}

// FireAfterToolCall dispatches an AfterToolCallEvent and updates the tool call counters.
func (ec *ExecutionContext) FireAfterToolCall(event AfterToolCallEvent) {
	ec.stats.IncrCounter(KeyToolCalls, 1)
	switch {
	case event.Skipped:
		ec.stats.IncrCounter(KeyNoopActions, 1)
	default:
		ec.stats.IncrCounter(KeyToolCallsFor+event.ToolName, 1)
	}
	if event.Error != nil {
		ec.stats.IncrCounter(KeyToolCallErrors, 1)
	}
	if f := ec.firer(); f != nil {
		f.FireAfterToolCall(ec.ctx, ec, event)
	}
}

// FireError dispatches an ErrorEvent for the current iteration.
func (ec *ExecutionContext) FireError(err error, fatal bool) {
	if f := ec.firer(); f != nil {
		f.FireError(ec.ctx, ec, ErrorEvent{
			Iteration: ec.Iteration(),
			Err:       err,
			Fatal:     fatal,
		})
	}
}

// -----------------------------------------------------------------------------
// Termination
// -----------------------------------------------------------------------------

// SetTermination records the outcome. Called by the executor once.
func (ec *ExecutionContext) SetTermination(reason TerminationReason, result string, err error) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.terminationReason = reason
	ec.finalResult = result
	ec.err = err
	ec.endTime = time.Now()
}

// TerminationReason returns why execution stopped, or "" while it is still running.
func (ec *ExecutionContext) TerminationReason() TerminationReason {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.terminationReason
}

// FinalResult returns the final answer, or StepLimitMessage when the cap was reached.
func (ec *ExecutionContext) FinalResult() string {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.finalResult
}

// Error returns the error that terminated execution, if any.
func (ec *ExecutionContext) Error() error {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.err
}

// Duration returns the elapsed time, up to termination if it happened.
func (ec *ExecutionContext) Duration() time.Duration {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	if ec.endTime.IsZero() {
		return time.Since(ec.startTime)
	}
	return ec.endTime.Sub(ec.startTime)
}
