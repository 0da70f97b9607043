// Package transcript writes a human-readable log of a session to a timestamped file.
//
// A Writer is both a set of session-level calls (start, user input, assistant reply, end)
// made by the shell and a hook that records what happens inside each request: raw model
// output per step, tool calls, observations and the final answer. Every entry is written
// with a single Write call to a file opened in append mode.
package transcript

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rickchristie/todoagent"
	"gopkg.in/yaml.v3"
)

// FileTimeLayout is the timestamp layout used in transcript file names.
const FileTimeLayout = "2006-01-02_15-04-05"

// Section markers.
const (
	MarkerSessionStarted = "===== SESSION STARTED ====="
	MarkerNewRequest     = "===== NEW USER REQUEST ====="
	MarkerSessionEnded   = "===== SESSION TERMINATED BY USER ====="
)

// SessionInfo describes the session in the transcript header.
type SessionInfo struct {
	ID      string `yaml:"session_id"`
	Variant string `yaml:"variant"`
	Model   string `yaml:"model"`
}

// Writer appends transcript entries to an io.Writer.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	path   string
	clock  todoagent.TimeProvider
}

// Open creates dir if needed and opens <dir>/<prefix>_<timestamp>.log for appending.
func Open(dir, prefix string, clock todoagent.TimeProvider) (*Writer, error) {
	if clock == nil {
		clock = todoagent.NewDefaultTimeProvider()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", prefix, clock.Format(FileTimeLayout)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}

	return &Writer{out: f, closer: f, path: path, clock: clock}, nil
}

// NewWriter creates a Writer over w. Close does not close w.
func NewWriter(w io.Writer, clock todoagent.TimeProvider) *Writer {
	if clock == nil {
		clock = todoagent.NewDefaultTimeProvider()
	}
	return &Writer{out: w, clock: clock}
}

// Path returns the file path, or "" when the Writer was created with NewWriter.
func (w *Writer) Path() string {
	return w.path
}

// Close closes the underlying file, if any.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// write emits one entry. Write errors are dropped; the transcript must never stop a session.
func (w *Writer) write(entry string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = io.WriteString(w.out, entry+"\n")
}

func dumpYAML(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("(failed to marshal: %v)\n", err)
	}
	return string(data)
}

// -----------------------------------------------------------------------------
// Session entries
// -----------------------------------------------------------------------------

// SessionStarted writes the header.
func (w *Writer) SessionStarted(info SessionInfo) {
	w.write(MarkerSessionStarted + "\n" +
		"started_at: " + w.clock.Format("2006-01-02 15:04:05") + "\n" +
		strings.TrimRight(dumpYAML(info), "\n"))
}

// UserInput records a line typed by the user.
func (w *Writer) UserInput(line string) {
	w.write("\nUSER INPUT: " + line)
}

// Assistant records the reply shown to the user.
func (w *Writer) Assistant(answer string) {
	w.write("\nASSISTANT: " + answer)
}

// SessionEnded writes the closing marker.
func (w *Writer) SessionEnded() {
	w.write("\n" + MarkerSessionEnded)
}

// -----------------------------------------------------------------------------
// Hooks
// -----------------------------------------------------------------------------

// OnBeforeExecution writes the request marker.
func (w *Writer) OnBeforeExecution(
	_ context.Context,
	_ *todoagent.ExecutionContext,
	event todoagent.BeforeExecutionEvent,
) {
	w.write("\n\n" + MarkerNewRequest + "\n" + event.Task + "\n")
}

// OnAfterModelCall writes the raw model output of the step.
func (w *Writer) OnAfterModelCall(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterModelCallEvent,
) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n--- MODEL STEP %d ---\n", execCtx.Iteration())

	if event.Error != nil {
		sb.WriteString("ERROR: " + event.Error.Error())
		w.write(sb.String())
		return
	}

	choice := event.Response.FirstChoice()
	if choice == nil {
		w.write(sb.String())
		return
	}
	sb.WriteString(choice.Content)
	if len(choice.ToolCalls) > 0 {
		calls := make([]map[string]any, 0, len(choice.ToolCalls))
		for _, tc := range choice.ToolCalls {
			call := map[string]any{"id": tc.ID}
			if tc.FunctionCall != nil {
				call["name"] = tc.FunctionCall.Name
				call["arguments"] = tc.FunctionCall.Arguments
			}
			calls = append(calls, call)
		}
		if choice.Content != "" {
			sb.WriteString("\n")
		}
		sb.WriteString("tool_calls:\n")
		sb.WriteString(strings.TrimRight(dumpYAML(calls), "\n"))
	}
	w.write(sb.String())
}

// OnAfterToolCall records which tool ran with which arguments.
func (w *Writer) OnAfterToolCall(
	_ context.Context,
	_ *todoagent.ExecutionContext,
	event todoagent.AfterToolCallEvent,
) {
	if event.Skipped {
		w.write(fmt.Sprintf("\nSKIPPED ACTION: %q", event.ToolName))
		return
	}
	entry := "\nEXECUTING: " + event.ToolName
	if len(event.Args) > 0 {
		entry += "\n" + strings.TrimRight(dumpYAML(event.Args), "\n")
	}
	w.write(entry)
}

// OnAfterIteration writes the observation fed back to the model.
func (w *Writer) OnAfterIteration(
	_ context.Context,
	_ *todoagent.ExecutionContext,
	event todoagent.AfterIterationEvent,
) {
	if event.Result == nil || event.Result.Action != todoagent.LAContinue {
		return
	}
	w.write("\nOBSERVATION:\n" + event.Result.Observation)
}

// OnError records errors, fatal or not.
func (w *Writer) OnError(
	_ context.Context,
	_ *todoagent.ExecutionContext,
	event todoagent.ErrorEvent,
) {
	kind := "ERROR"
	if event.Fatal {
		kind = "FATAL ERROR"
	}
	w.write(fmt.Sprintf("\n%s (step %d): %v", kind, event.Iteration, event.Err))
}

// OnAfterExecution writes the outcome and the request's stats.
func (w *Writer) OnAfterExecution(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.AfterExecutionEvent,
) {
	var sb strings.Builder
	switch event.TerminationReason {
	case todoagent.TerminationSuccess:
		sb.WriteString("\nFINAL ANSWER:\n" + event.Result)
	case todoagent.TerminationLimitExceeded:
		sb.WriteString("\nSTEP LIMIT REACHED:\n" + event.Result)
	default:
		fmt.Fprintf(&sb, "\nEXECUTION ENDED (%s)", event.TerminationReason)
		if event.Error != nil {
			sb.WriteString(": " + event.Error.Error())
		}
	}

	sb.WriteString("\n\nSTATS:\n")
	sb.WriteString(strings.TrimRight(dumpYAML(map[string]any{
		"steps":    execCtx.Iteration(),
		"duration": event.Duration.String(),
		"counters": execCtx.Stats().Counters(),
	}), "\n"))
	w.write(sb.String())
}

// Compile-time checks.
var (
	_ todoagent.BeforeExecutionHook = (*Writer)(nil)
	_ todoagent.AfterExecutionHook  = (*Writer)(nil)
	_ todoagent.AfterIterationHook  = (*Writer)(nil)
	_ todoagent.AfterModelCallHook  = (*Writer)(nil)
	_ todoagent.AfterToolCallHook   = (*Writer)(nil)
	_ todoagent.ErrorHook           = (*Writer)(nil)
)
