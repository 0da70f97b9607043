package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/agents/react"
	"github.com/rickchristie/todoagent/internal/tt"
	"github.com/rickchristie/todoagent/todo"
	"github.com/rickchristie/todoagent/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLoop returns queued results, then continues forever.
type scriptedLoop struct {
	results []*todoagent.AgentLoopResult
	errs    []error
	calls   int
	onNext  func(n int)
}

func (l *scriptedLoop) Next(_ *todoagent.ExecutionContext) (*todoagent.AgentLoopResult, error) {
	idx := l.calls
	l.calls++
	if l.onNext != nil {
		l.onNext(l.calls)
	}
	if idx < len(l.errs) && l.errs[idx] != nil {
		return nil, l.errs[idx]
	}
	if idx < len(l.results) {
		return l.results[idx], nil
	}
	return &todoagent.AgentLoopResult{Action: todoagent.LAContinue, Observation: "x"}, nil
}

func cont() *todoagent.AgentLoopResult {
	return &todoagent.AgentLoopResult{Action: todoagent.LAContinue, Observation: "ok"}
}

func done(answer string) *todoagent.AgentLoopResult {
	return &todoagent.AgentLoopResult{Action: todoagent.LATerminate, Result: answer}
}

func TestExecutor_Execute(t *testing.T) {
	loopErr := errors.New("model call failed")

	type input struct {
		maxSteps int
		results  []*todoagent.AgentLoopResult
		errs     []error
	}

	type expected struct {
		reason     todoagent.TerminationReason
		result     string
		iterations int64
		calls      int
		errIs      error
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "answer on first step",
			input: input{results: []*todoagent.AgentLoopResult{done("hi")}},
			expected: expected{
				reason:     todoagent.TerminationSuccess,
				result:     "hi",
				iterations: 1,
				calls:      1,
			},
		},
		{
			name:  "answer after two observations",
			input: input{results: []*todoagent.AgentLoopResult{cont(), cont(), done("ok")}},
			expected: expected{
				reason:     todoagent.TerminationSuccess,
				result:     "ok",
				iterations: 3,
				calls:      3,
			},
		},
		{
			name:  "default cap of six",
			input: input{},
			expected: expected{
				reason:     todoagent.TerminationLimitExceeded,
				result:     todoagent.StepLimitMessage,
				iterations: 6,
				calls:      6,
			},
		},
		{
			name:  "answer on the last allowed step",
			input: input{maxSteps: 2, results: []*todoagent.AgentLoopResult{cont(), done("just in time")}},
			expected: expected{
				reason:     todoagent.TerminationSuccess,
				result:     "just in time",
				iterations: 2,
				calls:      2,
			},
		},
		{
			name:  "custom cap",
			input: input{maxSteps: 3},
			expected: expected{
				reason:     todoagent.TerminationLimitExceeded,
				result:     todoagent.StepLimitMessage,
				iterations: 3,
				calls:      3,
			},
		},
		{
			name:  "loop error",
			input: input{results: []*todoagent.AgentLoopResult{cont()}, errs: []error{nil, loopErr}},
			expected: expected{
				reason:     todoagent.TerminationError,
				iterations: 2,
				calls:      2,
				errIs:      loopErr,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loop := &scriptedLoop{results: tc.input.results, errs: tc.input.errs}
			rec := tt.NewHookRecorder()
			exec := New(loop, Config{MaxSteps: tc.input.maxSteps}).RegisterHook(rec)
			execCtx := todoagent.NewExecutionContext(
				context.Background(), "test", todoagent.NewConversation("task"),
			)

			exec.Execute(execCtx)

			assert.Equal(t, tc.expected.reason, execCtx.TerminationReason())
			assert.Equal(t, tc.expected.result, execCtx.FinalResult())
			assert.Equal(t, tc.expected.iterations, execCtx.Stats().GetIterations())
			assert.Equal(t, tc.expected.calls, loop.calls)
			if tc.expected.errIs != nil {
				assert.ErrorIs(t, execCtx.Error(), tc.expected.errIs)
				assert.Contains(t, execCtx.Error().Error(),
					fmt.Sprintf("iteration %d", tc.expected.calls))
				require.Len(t, rec.Errors, 1)
				assert.True(t, rec.Errors[0].Fatal)
			} else {
				assert.NoError(t, execCtx.Error())
			}

			events := rec.Events()
			assert.Equal(t, "before_execution", events[0])
			assert.Equal(t, "after_execution:"+string(tc.expected.reason), events[len(events)-1])
			require.Len(t, rec.AfterExecution, 1)
			assert.Equal(t, tc.expected.result, rec.AfterExecution[0].Result)
		})
	}
}

func TestExecutor_HookOrder(t *testing.T) {
	loop := &scriptedLoop{results: []*todoagent.AgentLoopResult{cont(), done("ok")}}
	rec := tt.NewHookRecorder()
	execCtx := todoagent.NewExecutionContext(
		context.Background(), "test", todoagent.NewConversation("task"),
	)

	New(loop, DefaultConfig()).RegisterHook(rec).Execute(execCtx)

	assert.Equal(t, []string{
		"before_execution",
		"before_iteration:1",
		"after_iteration:1",
		"before_iteration:2",
		"after_iteration:2",
		"after_execution:success",
	}, rec.Events())
}

func TestExecutor_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := &scriptedLoop{onNext: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	execCtx := todoagent.NewExecutionContext(ctx, "test", todoagent.NewConversation("task"))

	New(loop, DefaultConfig()).Execute(execCtx)

	assert.Equal(t, todoagent.TerminationContextCanceled, execCtx.TerminationReason())
	assert.ErrorIs(t, execCtx.Error(), context.Canceled)
	assert.Equal(t, 2, loop.calls)
	assert.Equal(t, "", execCtx.FinalResult())
}

func TestExecutor_ReActNeverAnswers(t *testing.T) {
	// Every step adds an item; the cap must stop it after exactly six model calls.
	model := tt.NewMockModel().WithFallback(tt.ReActStep("more", "add_item", "again"))
	list := todo.NewList()
	tc := toolchain.NewText()
	for _, tool := range todo.NewTools(list) {
		tc.RegisterTool(tool)
	}
	execCtx := todoagent.NewExecutionContext(
		context.Background(), "test", todoagent.NewConversation("loop forever"),
	)

	New(react.NewAgent(model, tc), DefaultConfig()).Execute(execCtx)

	assert.Equal(t, todoagent.TerminationLimitExceeded, execCtx.TerminationReason())
	assert.Equal(t, "Unable to complete within max steps.", execCtx.FinalResult())
	assert.Equal(t, 6, model.CallCount())
	assert.Equal(t, 6, list.Len())
}
