// Package logging builds the diagnostics logger and a hook that reports agent activity to it.
package logging

import (
	"context"
	"fmt"

	"github.com/rickchristie/todoagent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger. verbose lowers the level to debug, which includes one
// entry per model call and tool call. outputPaths replaces the default stderr sink when set.
func New(verbose bool, outputPaths ...string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if len(outputPaths) > 0 {
		config.OutputPaths = outputPaths
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Hook logs requests, model calls, tool calls and errors. Register it with
// session.Session.RegisterHook.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a Hook. A nil logger logs nothing.
func NewHook(logger *zap.Logger) *Hook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hook{logger: logger}
}

func (h *Hook) log(execCtx *todoagent.ExecutionContext) *zap.Logger {
	return h.logger.With(
		zap.String("session", execCtx.Name()),
		zap.Int("step", execCtx.Iteration()),
	)
}

func (h *Hook) OnBeforeExecution(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.BeforeExecutionEvent,
) {
	h.logger.Info("request started",
		zap.String("session", execCtx.Name()),
		zap.String("task", event.Task))
}

func (h *Hook) OnAfterExecution(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterExecutionEvent,
) {
	stats := execCtx.Stats()
	fields := []zap.Field{
		zap.String("session", execCtx.Name()),
		zap.String("reason", string(event.TerminationReason)),
		zap.Int64("steps", stats.GetIterations()),
		zap.Int64("tool_calls", stats.GetToolCallCount()),
		zap.Int64("tokens", stats.GetTotalTokens()),
		zap.Duration("duration", event.Duration),
	}

	switch event.TerminationReason {
	case todoagent.TerminationSuccess:
		h.logger.Info("request finished", fields...)
	case todoagent.TerminationLimitExceeded:
		h.logger.Warn("step limit reached", fields...)
	default:
		h.logger.Error("request failed", append(fields, zap.Error(event.Error))...)
	}
}

func (h *Hook) OnAfterModelCall(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterModelCallEvent,
) {
	logger := h.log(execCtx).With(
		zap.String("model", event.Model),
		zap.Duration("duration", event.Duration),
	)
	if event.Error != nil {
		logger.Warn("model call failed", zap.Error(event.Error))
		return
	}

	fields := []zap.Field{zap.Int("messages", len(event.Request))}
	if event.Response != nil && event.Response.Info != nil {
		fields = append(fields,
			zap.Int("input_tokens", event.Response.Info.InputTokens),
			zap.Int("output_tokens", event.Response.Info.OutputTokens))
	}
	if choice := event.Response.FirstChoice(); choice != nil {
		fields = append(fields,
			zap.String("stop_reason", choice.StopReason),
			zap.Int("tool_calls", len(choice.ToolCalls)))
	}
	logger.Debug("model call", fields...)
}

func (h *Hook) OnAfterToolCall(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterToolCallEvent,
) {
	logger := h.log(execCtx).With(
		zap.String("tool", event.ToolName),
		zap.Any("args", event.Args),
	)
	switch {
	case event.Error != nil:
		logger.Warn("tool call failed", zap.Error(event.Error))
	case event.Skipped:
		logger.Debug("action skipped")
	default:
		logger.Debug("tool call",
			zap.Duration("duration", event.Duration),
			zap.String("observation", event.Observation))
	}
}

func (h *Hook) OnError(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.ErrorEvent,
) {
	logger := h.logger.With(zap.String("session", execCtx.Name()), zap.Int("step", event.Iteration))
	if event.Fatal {
		logger.Error("agent loop failed", zap.Error(event.Err))
		return
	}
	logger.Warn("agent loop error", zap.Error(event.Err))
}

var (
	_ todoagent.BeforeExecutionHook = (*Hook)(nil)
	_ todoagent.AfterExecutionHook  = (*Hook)(nil)
	_ todoagent.AfterModelCallHook  = (*Hook)(nil)
	_ todoagent.AfterToolCallHook   = (*Hook)(nil)
	_ todoagent.ErrorHook           = (*Hook)(nil)
)
