package todo

import (
	"context"
	"testing"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTools(t *testing.T) {
	list := NewList()
	tools := NewTools(list)
	require.Len(t, tools, 3)

	add, ok := tools[0].(*todoagent.ToolFunc[TextInput, string])
	require.True(t, ok)
	remove, ok := tools[1].(*todoagent.ToolFunc[TextInput, string])
	require.True(t, ok)
	show, ok := tools[2].(*todoagent.ToolFunc[NoInput, string])
	require.True(t, ok)

	assert.Equal(t, todoagent.ToolAddItem, add.Name())
	assert.Equal(t, todoagent.ToolRemoveItem, remove.Name())
	assert.Equal(t, todoagent.ToolListItems, show.Name())

	ctx := context.Background()

	res, err := add.Call(ctx, TextInput{Text: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, `Added "buy milk" to your to-do list.`, res)

	res, err = show.Call(ctx, NoInput{})
	require.NoError(t, err)
	assert.Equal(t, "Here are your current to-do items:\n- buy milk", res)

	res, err = remove.Call(ctx, TextInput{Text: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, `Removed "buy milk" from your to-do list.`, res)

	res, err = show.Call(ctx, NoInput{})
	require.NoError(t, err)
	assert.Equal(t, EmptyMessage, res)
}

func TestNewTools_SchemasCompile(t *testing.T) {
	for _, tool := range NewTools(NewList()) {
		var raw map[string]any
		var name string
		switch tl := tool.(type) {
		case *todoagent.ToolFunc[TextInput, string]:
			raw, name = tl.ParameterSchema(), tl.Name()
		case *todoagent.ToolFunc[NoInput, string]:
			raw, name = tl.ParameterSchema(), tl.Name()
		default:
			t.Fatalf("unexpected tool type %T", tool)
		}

		t.Run(name, func(t *testing.T) {
			s, err := schema.Compile(raw)
			require.NoError(t, err)
			if name == todoagent.ToolListItems {
				assert.Empty(t, s.Required())
			} else {
				assert.Equal(t, []string{"text"}, s.Required())
			}
		})
	}
}

func TestNewTools_SeparateListsAreIndependent(t *testing.T) {
	a, b := NewList(), NewList()
	addA := NewAddTool(a)

	_, err := addA.Call(context.Background(), TextInput{Text: "only in a"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}
