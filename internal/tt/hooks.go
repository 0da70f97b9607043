package tt

import (
	"context"
	"fmt"
	"sync"

	"github.com/rickchristie/todoagent"
)

// HookRecorder implements every hook interface and records a short line per event.
type HookRecorder struct {
	mu     sync.Mutex
	events []string

	Errors         []todoagent.ErrorEvent
	AfterExecution []todoagent.AfterExecutionEvent
	ToolCalls      []todoagent.AfterToolCallEvent
}

// NewHookRecorder creates an empty HookRecorder.
func NewHookRecorder() *HookRecorder {
	return &HookRecorder{}
}

// Events returns the recorded event lines in order.
func (r *HookRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *HookRecorder) record(format string, args ...any) {
	r.mu.Lock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *HookRecorder) OnBeforeExecution(
	_ context.Context, _ *todoagent.ExecutionContext, _ todoagent.BeforeExecutionEvent,
) {
	r.record("before_execution")
}

func (r *HookRecorder) OnAfterExecution(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.AfterExecutionEvent,
) {
	r.AfterExecution = append(r.AfterExecution, e)
	r.record("after_execution:%s", e.TerminationReason)
}

func (r *HookRecorder) OnBeforeIteration(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.BeforeIterationEvent,
) {
	r.record("before_iteration:%d", e.Iteration)
}

func (r *HookRecorder) OnAfterIteration(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.AfterIterationEvent,
) {
	r.record("after_iteration:%d", e.Iteration)
}

func (r *HookRecorder) OnBeforeModelCall(
	_ context.Context, _ *todoagent.ExecutionContext, _ todoagent.BeforeModelCallEvent,
) {
	r.record("before_model_call")
}

func (r *HookRecorder) OnAfterModelCall(
	_ context.Context, _ *todoagent.ExecutionContext, _ todoagent.AfterModelCallEvent,
) {
	r.record("after_model_call")
}

func (r *HookRecorder) OnBeforeToolCall(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.BeforeToolCallEvent,
) {
	r.record("before_tool_call:%s", e.ToolName)
}

func (r *HookRecorder) OnAfterToolCall(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.AfterToolCallEvent,
) {
	r.ToolCalls = append(r.ToolCalls, e)
	r.record("after_tool_call:%s", e.ToolName)
}

func (r *HookRecorder) OnError(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.ErrorEvent,
) {
	r.Errors = append(r.Errors, e)
	r.record("error:%v", e.Fatal)
}
