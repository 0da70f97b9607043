package hooks

import (
	"context"

	"github.com/rickchristie/todoagent"
)

// Registry stores hooks in registration order and dispatches each event to the hooks that
// implement the matching interface. A hook may implement any combination of the interfaces
// in the todoagent package; it only receives the events it implements.
//
//	registry := hooks.NewRegistry().
//	    Register(transcriptWriter).
//	    Register(logging.NewHook(logger))
//
//	exec := executor.New(loop, executor.DefaultConfig()).WithHooks(registry)
//
// Registry is NOT thread-safe. Register all hooks before starting execution.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook. Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	if hook != nil {
		r.hooks = append(r.hooks, hook)
	}
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// FireBeforeExecution dispatches to BeforeExecutionHook implementations.
func (r *Registry) FireBeforeExecution(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.BeforeExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.BeforeExecutionHook); ok {
			hook.OnBeforeExecution(ctx, execCtx, event)
		}
	}
}

// FireAfterExecution dispatches to AfterExecutionHook implementations.
func (r *Registry) FireAfterExecution(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.AfterExecutionHook); ok {
			hook.OnAfterExecution(ctx, execCtx, event)
		}
	}
}

// FireBeforeIteration dispatches to BeforeIterationHook implementations.
func (r *Registry) FireBeforeIteration(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.BeforeIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.BeforeIterationHook); ok {
			hook.OnBeforeIteration(ctx, execCtx, event)
		}
	}
}

// FireAfterIteration dispatches to AfterIterationHook implementations.
func (r *Registry) FireAfterIteration(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.AfterIterationHook); ok {
			hook.OnAfterIteration(ctx, execCtx, event)
		}
	}
}

// FireBeforeModelCall dispatches to BeforeModelCallHook implementations.
func (r *Registry) FireBeforeModelCall(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.BeforeModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, execCtx, event)
		}
	}
}

// FireAfterModelCall dispatches to AfterModelCallHook implementations.
func (r *Registry) FireAfterModelCall(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, execCtx, event)
		}
	}
}

// FireBeforeToolCall dispatches to BeforeToolCallHook implementations.
func (r *Registry) FireBeforeToolCall(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.BeforeToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, execCtx, event)
		}
	}
}

// FireAfterToolCall dispatches to AfterToolCallHook implementations.
func (r *Registry) FireAfterToolCall(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, execCtx, event)
		}
	}
}

// FireError dispatches to ErrorHook implementations.
func (r *Registry) FireError(
	ctx context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.ErrorEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(todoagent.ErrorHook); ok {
			hook.OnError(ctx, execCtx, event)
		}
	}
}

// Compile-time check that Registry can be installed on an ExecutionContext.
var _ todoagent.HookFirer = (*Registry)(nil)
