package todo

import (
	"context"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/schema"
)

// TextInput is the argument of add_item and remove_item.
type TextInput struct {
	Text string `json:"text"`
}

// NoInput is the argument of list_items.
type NoInput struct{}

// NewAddTool returns the add_item tool bound to list.
func NewAddTool(list *List) *todoagent.ToolFunc[TextInput, string] {
	return todoagent.NewToolFunc(
		todoagent.ToolAddItem,
		"Add a new item to the to-do list.",
		schema.Object(map[string]*schema.Property{
			"text": schema.String("The description of the task to add."),
		}, "text"),
		func(_ context.Context, in TextInput) (string, error) {
			return list.Add(in.Text), nil
		},
	)
}

// NewRemoveTool returns the remove_item tool bound to list.
func NewRemoveTool(list *List) *todoagent.ToolFunc[TextInput, string] {
	return todoagent.NewToolFunc(
		todoagent.ToolRemoveItem,
		"Remove an existing item from the to-do list. The text must match the item exactly.",
		schema.Object(map[string]*schema.Property{
			"text": schema.String("The description of the task to remove."),
		}, "text"),
		func(_ context.Context, in TextInput) (string, error) {
			return list.Remove(in.Text), nil
		},
	)
}

// NewListTool returns the list_items tool bound to list.
func NewListTool(list *List) *todoagent.ToolFunc[NoInput, string] {
	return todoagent.NewToolFunc(
		todoagent.ToolListItems,
		"Show all items currently on the to-do list.",
		schema.Object(nil),
		func(_ context.Context, _ NoInput) (string, error) {
			return list.Render(), nil
		},
	)
}

// NewTools returns add_item, remove_item and list_items bound to list, in that order, ready to
// pass to a toolchain's RegisterTool.
func NewTools(list *List) []any {
	return []any{
		NewAddTool(list),
		NewRemoveTool(list),
		NewListTool(list),
	}
}
