// Package hooks provides the registry that dispatches execution events to observers.
//
// Hooks watch a request without changing it. The transcript writer, the console progress
// printer and the diagnostics logger are all hooks. Each hook interface lives in the
// todoagent package and corresponds to one event:
//
//   - [todoagent.BeforeExecutionHook] / [todoagent.AfterExecutionHook]: once per user request
//   - [todoagent.BeforeIterationHook] / [todoagent.AfterIterationHook]: once per step
//   - [todoagent.BeforeModelCallHook] / [todoagent.AfterModelCallHook]: around each model call
//   - [todoagent.BeforeToolCallHook] / [todoagent.AfterToolCallHook]: around each action,
//     including skipped ones
//   - [todoagent.ErrorHook]: fatal and non-fatal errors
//
// Implement only the interfaces you need:
//
//	type CountingHook struct{ calls int }
//
//	func (h *CountingHook) OnAfterToolCall(
//	    ctx context.Context,
//	    execCtx *todoagent.ExecutionContext,
//	    event todoagent.AfterToolCallEvent,
//	) {
//	    h.calls++
//	}
//
//	var _ todoagent.AfterToolCallHook = (*CountingHook)(nil)
//
// The executor installs the Registry on the ExecutionContext, so models and toolchains fire
// their events without holding a reference to it.
package hooks
