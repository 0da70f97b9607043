package session

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rickchristie/todoagent"
)

// ProgressHook prints one line per action before it runs:
//
//	[step 1] - add_item(buy milk)
//	[step 2] - list_items()
type ProgressHook struct {
	out io.Writer
}

// NewProgressHook creates a ProgressHook writing to out.
func NewProgressHook(out io.Writer) *ProgressHook {
	return &ProgressHook{out: out}
}

// OnBeforeToolCall prints the step line.
func (h *ProgressHook) OnBeforeToolCall(
	_ context.Context,
	execCtx *todoagent.ExecutionContext,
	event todoagent.BeforeToolCallEvent,
) {
	name := event.ToolName
	if name == "" {
		name = "none"
	}
	fmt.Fprintf(h.out, "[step %d] - %s(%s)\n", execCtx.Iteration(), name, formatArgs(event.Args))
}

// formatArgs renders argument values in key order, comma separated.
func formatArgs(args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, fmt.Sprint(args[k]))
	}
	return strings.Join(values, ", ")
}

var _ todoagent.BeforeToolCallHook = (*ProgressHook)(nil)
