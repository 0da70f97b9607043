package toolchain

import (
	"context"

	"github.com/rickchristie/todoagent"
)

// recorder captures tool hook events.
type recorder struct {
	before []todoagent.BeforeToolCallEvent
	after  []todoagent.AfterToolCallEvent
}

func (r *recorder) FireBeforeModelCall(
	context.Context, *todoagent.ExecutionContext, todoagent.BeforeModelCallEvent,
) {
}

func (r *recorder) FireAfterModelCall(
	context.Context, *todoagent.ExecutionContext, todoagent.AfterModelCallEvent,
) {
}

func (r *recorder) FireBeforeToolCall(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.BeforeToolCallEvent,
) {
	r.before = append(r.before, e)
}

func (r *recorder) FireAfterToolCall(
	_ context.Context, _ *todoagent.ExecutionContext, e todoagent.AfterToolCallEvent,
) {
	r.after = append(r.after, e)
}

func (r *recorder) FireError(context.Context, *todoagent.ExecutionContext, todoagent.ErrorEvent) {}

func newExecCtx() (*todoagent.ExecutionContext, *recorder) {
	rec := &recorder{}
	execCtx := todoagent.NewExecutionContext(context.Background(), "test", todoagent.NewConversation("task"))
	execCtx.SetHookFirer(rec)
	return execCtx, rec
}
