// Package session owns one to-do list and runs user requests through an agent loop.
//
// A Session is independent state: two sessions in one process never share a list. Each call
// to Handle starts a fresh conversation, so the model only remembers earlier requests through
// the list itself.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/agents/react"
	"github.com/rickchristie/todoagent/agents/toolcall"
	"github.com/rickchristie/todoagent/executor"
	"github.com/rickchristie/todoagent/hooks"
	"github.com/rickchristie/todoagent/todo"
	"github.com/rickchristie/todoagent/toolchain"
)

// Variant selects the agent loop.
type Variant string

const (
	// VariantReAct parses Thought / Action / Action Input / Final Answer text.
	VariantReAct Variant = "react"
	// VariantToolCall uses the model's native tool calls.
	VariantToolCall Variant = "toolcall"
)

// ParseVariant validates s as a Variant. "graph" is accepted as an alias of toolcall.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(VariantReAct), "":
		return VariantReAct, nil
	case string(VariantToolCall), "graph":
		return VariantToolCall, nil
	default:
		return "", fmt.Errorf("unknown variant %q: want %q or %q", s, VariantReAct, VariantToolCall)
	}
}

// TranscriptPrefix returns the transcript file name prefix of the variant.
func (v Variant) TranscriptPrefix() string {
	if v == VariantToolCall {
		return "graph-session"
	}
	return "session"
}

// Settings configures a Session.
type Settings struct {
	Variant  Variant
	MaxSteps int

	// Temperature is the sampling temperature. Negative means the variant's default.
	Temperature float64

	// BehaviorAndContext is appended to the system prompt when set.
	BehaviorAndContext string

	// TimeProvider is the clock used in prompts. Nil means the system clock.
	TimeProvider todoagent.TimeProvider
}

// DefaultSettings returns the ReAct variant with the default step cap and temperature.
func DefaultSettings() Settings {
	return Settings{
		Variant:     VariantReAct,
		MaxSteps:    todoagent.DefaultMaxSteps,
		Temperature: -1,
	}
}

// Session holds the to-do list, the agent loop and the executor of one user.
type Session struct {
	id       string
	settings Settings
	list     *todo.List
	hooks    *hooks.Registry
	executor *executor.Executor
}

// New builds a Session with an empty list.
func New(model todoagent.Model, settings Settings) (*Session, error) {
	if model == nil {
		return nil, fmt.Errorf("session: model is required")
	}
	if settings.Variant == "" {
		settings.Variant = VariantReAct
	}
	if settings.TimeProvider == nil {
		settings.TimeProvider = todoagent.NewDefaultTimeProvider()
	}

	list := todo.NewList()
	tools := todo.NewTools(list)

	var loop todoagent.AgentLoop
	switch settings.Variant {
	case VariantReAct:
		tc := toolchain.NewText()
		for _, tool := range tools {
			tc.RegisterTool(tool)
		}
		agent := react.NewAgent(model, tc).
			WithBehaviorAndContext(settings.BehaviorAndContext).
			WithTimeProvider(settings.TimeProvider)
		if settings.Temperature >= 0 {
			agent.WithTemperature(settings.Temperature)
		}
		loop = agent
	case VariantToolCall:
		tc := toolchain.NewNative()
		for _, tool := range tools {
			tc.RegisterTool(tool)
		}
		agent := toolcall.NewAgent(model, tc).
			WithBehaviorAndContext(settings.BehaviorAndContext).
			WithTimeProvider(settings.TimeProvider)
		if settings.Temperature >= 0 {
			agent.WithTemperature(settings.Temperature)
		}
		loop = agent
	default:
		return nil, fmt.Errorf("session: unknown variant %q", settings.Variant)
	}

	registry := hooks.NewRegistry()
	return &Session{
		id:       uuid.NewString(),
		settings: settings,
		list:     list,
		hooks:    registry,
		executor: executor.New(loop, executor.Config{MaxSteps: settings.MaxSteps}).WithHooks(registry),
	}, nil
}

// ID returns the session id. It names every ExecutionContext the session creates.
func (s *Session) ID() string {
	return s.id
}

// Variant returns the agent loop in use.
func (s *Session) Variant() Variant {
	return s.settings.Variant
}

// List returns the session's to-do list.
func (s *Session) List() *todo.List {
	return s.list
}

// RegisterHook adds a hook that observes every request. Returns the session for chaining.
func (s *Session) RegisterHook(hook any) *Session {
	s.hooks.Register(hook)
	return s
}

// Handle runs one request to completion and returns the answer to show the user.
//
// When the step cap is reached the answer is todoagent.StepLimitMessage and the error is nil.
// An error is returned only when a model call fails or ctx is canceled.
func (s *Session) Handle(ctx context.Context, input string) (string, error) {
	execCtx := todoagent.NewExecutionContext(ctx, s.id, todoagent.NewConversation(input))
	s.executor.Execute(execCtx)

	switch execCtx.TerminationReason() {
	case todoagent.TerminationSuccess, todoagent.TerminationLimitExceeded:
		return execCtx.FinalResult(), nil
	default:
		return "", execCtx.Error()
	}
}

// IsExitCommand reports whether line asks to end the session: "exit" or "quit", ignoring
// case and surrounding whitespace.
func IsExitCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit":
		return true
	}
	return false
}
