// Package executor drives an AgentLoop to completion under a step cap.
package executor

import (
	"fmt"
	"time"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/hooks"
)

// Config holds configuration for the executor.
type Config struct {
	// MaxSteps is the number of iterations (model calls) allowed per execution.
	// Zero or negative means todoagent.DefaultMaxSteps.
	MaxSteps int
}

// DefaultConfig returns a Config with the default step cap.
func DefaultConfig() Config {
	return Config{MaxSteps: todoagent.DefaultMaxSteps}
}

func (c Config) maxSteps() int {
	if c.MaxSteps <= 0 {
		return todoagent.DefaultMaxSteps
	}
	return c.MaxSteps
}

// Executor orchestrates the execution of an AgentLoop.
// It handles the main loop, hook invocations, and the step cap.
type Executor struct {
	loop   todoagent.AgentLoop
	config Config
	hooks  *hooks.Registry
}

// New creates a new Executor with the given AgentLoop and configuration.
func New(loop todoagent.AgentLoop, config Config) *Executor {
	return &Executor{
		loop:   loop,
		config: config,
		hooks:  hooks.NewRegistry(),
	}
}

// WithHooks replaces the hook registry. Returns the executor for chaining.
func (e *Executor) WithHooks(h *hooks.Registry) *Executor {
	e.hooks = h
	return e
}

// RegisterHook adds a hook to the executor's registry.
// Returns the executor for chaining.
func (e *Executor) RegisterHook(hook any) *Executor {
	e.hooks.Register(hook)
	return e
}

// Execute runs the AgentLoop until it terminates, fails, or exhausts the step cap.
// The outcome is recorded on execCtx: see TerminationReason, FinalResult and Error.
//
// Termination reasons:
//   - TerminationSuccess: the loop returned LATerminate; FinalResult is its answer
//   - TerminationLimitExceeded: MaxSteps iterations ran without an answer; FinalResult is
//     todoagent.StepLimitMessage and Error is nil
//   - TerminationError: the loop returned an error (wrapped with the iteration number)
//   - TerminationContextCanceled: the context was canceled between iterations
//
// BeforeExecution and AfterExecution fire exactly once each.
func (e *Executor) Execute(execCtx *todoagent.ExecutionContext) {
	if e.hooks != nil {
		execCtx.SetHookFirer(e.hooks)
	}

	start := time.Now()
	defer func() {
		if e.hooks != nil {
			e.hooks.FireAfterExecution(execCtx.Context(), execCtx, todoagent.AfterExecutionEvent{
				TerminationReason: execCtx.TerminationReason(),
				Result:            execCtx.FinalResult(),
				Error:             execCtx.Error(),
				Duration:          time.Since(start),
			})
		}
	}()

	if e.hooks != nil {
		e.hooks.FireBeforeExecution(execCtx.Context(), execCtx, todoagent.BeforeExecutionEvent{
			Task: execCtx.Data().GetTask(),
		})
	}

	maxSteps := e.config.maxSteps()
	for {
		if err := execCtx.Context().Err(); err != nil {
			execCtx.SetTermination(todoagent.TerminationContextCanceled, "", err)
			return
		}

		if execCtx.Iteration() >= maxSteps {
			execCtx.SetTermination(
				todoagent.TerminationLimitExceeded,
				todoagent.StepLimitMessage,
				nil,
			)
			return
		}

		iteration := execCtx.StartIteration()
		iterStart := time.Now()

		if e.hooks != nil {
			e.hooks.FireBeforeIteration(execCtx.Context(), execCtx, todoagent.BeforeIterationEvent{
				Iteration: iteration,
			})
		}

		result, err := e.loop.Next(execCtx)
		iterDuration := time.Since(iterStart)

		if err != nil {
			if ctxErr := execCtx.Context().Err(); ctxErr != nil {
				execCtx.SetTermination(todoagent.TerminationContextCanceled, "", ctxErr)
				return
			}
			execErr := fmt.Errorf("AgentLoop.Next (iteration %d): %w", iteration, err)
			execCtx.FireError(execErr, true)
			execCtx.SetTermination(todoagent.TerminationError, "", execErr)
			return
		}

		if e.hooks != nil {
			e.hooks.FireAfterIteration(execCtx.Context(), execCtx, todoagent.AfterIterationEvent{
				Iteration: iteration,
				Result:    result,
				Duration:  iterDuration,
			})
		}

		if result.Action == todoagent.LATerminate {
			execCtx.SetTermination(todoagent.TerminationSuccess, result.Result, nil)
			return
		}
	}
}
