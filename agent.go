package todoagent

import (
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// AgentLoop is responsible for:
//  1. Constructing the prompt to be sent to the model.
//  2. Calling the model with the constructed prompt.
//  3. Acting on the model output (tool calls, final answer).
//  4. Deciding whether to continue the loop or terminate with a result.
//
// The executor calls [AgentLoop.Next] repeatedly until it returns [LATerminate], an error, or
// the step cap is reached.
type AgentLoop interface {
	// Next performs one iteration of the agent loop. The ExecutionContext provides the
	// Conversation via execCtx.Data() and carries the hooks fired by models and toolchains.
	Next(execCtx *ExecutionContext) (*AgentLoopResult, error)
}

// LoopData is the data passed through each AgentLoop iteration.
type LoopData interface {
	// GetTask returns the user request that started the loop.
	GetTask() string

	// GetMessages returns the conversation so far, oldest first. The system prompt is not
	// part of it; agent loops prepend their own.
	GetMessages() []llms.MessageContent

	// AppendMessages adds messages to the end of the conversation.
	AppendMessages(msgs ...llms.MessageContent)
}

// Conversation is the append-only message history of one user request.
type Conversation struct {
	task     string
	messages []llms.MessageContent
}

// NewConversation creates a Conversation seeded with the user's request as a human message.
func NewConversation(task string) *Conversation {
	return &Conversation{
		task:     task,
		messages: []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, task)},
	}
}

// GetTask returns the user request that started the conversation.
func (c *Conversation) GetTask() string {
	return c.task
}

// GetMessages returns a copy of the message history.
func (c *Conversation) GetMessages() []llms.MessageContent {
	out := make([]llms.MessageContent, len(c.messages))
	copy(out, c.messages)
	return out
}

// AppendMessages adds messages to the end of the history.
func (c *Conversation) AppendMessages(msgs ...llms.MessageContent) {
	c.messages = append(c.messages, msgs...)
}

// Compile-time check that Conversation implements LoopData.
var _ LoopData = (*Conversation)(nil)

// TextOf concatenates the text parts of a message, ignoring tool calls and responses.
func TextOf(msg llms.MessageContent) string {
	var sb strings.Builder
	for _, part := range msg.Parts {
		if tc, ok := part.(llms.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

type LoopAction string

const (
	LAContinue  LoopAction = "c"
	LATerminate LoopAction = "t"
)

type AgentLoopResult struct {
	// Action indicates whether to continue or terminate the loop.
	Action LoopAction

	// Observation is the text fed back to the model. Only set when Action is [LAContinue].
	Observation string

	// Result is the final answer. Only set when Action is [LATerminate].
	Result string
}
