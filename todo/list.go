// Package todo holds the to-do list a session manipulates and the three tools that expose it
// to the model.
//
// Items are plain strings compared by exact match. Duplicates are allowed and nothing is
// persisted; a List lives as long as the session that owns it.
package todo

import (
	"fmt"
	"strings"
	"sync"
)

// Messages returned by List operations. They are fed back to the model verbatim.
const (
	msgAdded    = `Added "%s" to your to-do list.`
	msgRemoved  = `Removed "%s" from your to-do list.`
	msgNotFound = `"%s" was not found in your to-do list.`

	// EmptyMessage is what Render returns when the list has no items.
	EmptyMessage = "Your to-do list is currently empty."

	listHeader = "Here are your current to-do items:"
)

// List is an ordered collection of to-do items. The zero value is an empty list ready to use.
type List struct {
	mu    sync.Mutex
	items []string
}

// NewList creates an empty List.
func NewList() *List {
	return &List{}
}

// Add appends text verbatim and returns the confirmation message.
func (l *List) Add(text string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, text)
	return fmt.Sprintf(msgAdded, text)
}

// Remove deletes the first item equal to text. If no item matches the list is unchanged and the
// not-found message is returned.
func (l *List) Remove(text string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, item := range l.items {
		if item == text {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return fmt.Sprintf(msgRemoved, text)
		}
	}
	return fmt.Sprintf(msgNotFound, text)
}

// Render returns the items as a bulleted list in insertion order, or EmptyMessage.
func (l *List) Render() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.items) == 0 {
		return EmptyMessage
	}

	var sb strings.Builder
	sb.WriteString(listHeader)
	for _, item := range l.items {
		sb.WriteString("\n- ")
		sb.WriteString(item)
	}
	return sb.String()
}

// Items returns a copy of the items.
func (l *List) Items() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
