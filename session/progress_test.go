package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/rickchristie/todoagent/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressHook(t *testing.T) {
	tests := []struct {
		name      string
		variant   Variant
		responses func(m *tt.MockModel)
		expected  string
	}{
		{
			name:    "react steps",
			variant: VariantReAct,
			responses: func(m *tt.MockModel) {
				m.AddResponse(tt.ReActStep("add", "add_item", `"buy milk"`)).
					AddResponse(tt.ReActStep("list", "list_items", "None")).
					AddResponse(tt.ReActStep("nothing", "none", "None")).
					AddResponse("Final Answer: done")
			},
			expected: "[step 1] - add_item(buy milk)\n" +
				"[step 2] - list_items()\n" +
				"[step 3] - none(None)\n",
		},
		{
			name:    "tool calls in one step",
			variant: VariantToolCall,
			responses: func(m *tt.MockModel) {
				m.AddToolCallResponse("",
					tt.ToolCall("c1", "add_item", `{"text":"a"}`),
					tt.ToolCall("c2", "remove_item", `{"text":"a"}`),
				).AddResponse("done")
			},
			expected: "[step 1] - add_item(a)\n" +
				"[step 1] - remove_item(a)\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := tt.NewMockModel()
			tc.responses(model)

			sess, err := New(model, fixedSettings(tc.variant))
			require.NoError(t, err)

			var out bytes.Buffer
			sess.RegisterHook(NewProgressHook(&out))

			_, err = sess.Handle(context.Background(), "go")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "", formatArgs(nil))
	assert.Equal(t, "x", formatArgs(map[string]any{"text": "x"}))
	assert.Equal(t, "1, 2", formatArgs(map[string]any{"b": 2, "a": 1}))
}
