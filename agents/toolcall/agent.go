// Package toolcall implements a Decide -> Act loop over native tool calls.
//
// Each iteration is one Decide step: the model receives the conversation together with the
// tool definitions. If it answers with tool calls, the Act step runs them one by one in the
// order given and appends one tool message per call, then the loop continues. A response
// without tool calls ends the loop; its "Final Answer:" text, or the whole reply if the model
// skipped the marker, is the result.
package toolcall

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/format"
	"github.com/rickchristie/todoagent/toolchain"
	"github.com/tmc/langchaingo/llms"
)

// DefaultTemperature is the sampling temperature used unless WithTemperature is called.
const DefaultTemperature = 0.0

//go:embed template_system.tmpl
var systemTemplateContent string

// DefaultSystemTemplate is the default template for the system prompt.
var DefaultSystemTemplate = template.Must(
	template.New("toolcall_system").Parse(systemTemplateContent),
)

// SystemPromptData contains the data passed to the system template.
type SystemPromptData struct {
	BehaviorAndContext string
	ToolsPrompt        string
	Time               todoagent.TimeProvider
}

// Agent implements the Decide/Act loop.
type Agent struct {
	behaviorAndContext string
	systemTemplate     *template.Template
	model              todoagent.Model
	toolChain          *toolchain.Native
	timeProvider       todoagent.TimeProvider
	temperature        float64
}

// NewAgent creates a new Agent with the given model and toolchain.
func NewAgent(model todoagent.Model, tc *toolchain.Native) *Agent {
	return &Agent{
		model:          model,
		toolChain:      tc,
		systemTemplate: DefaultSystemTemplate,
		timeProvider:   todoagent.NewDefaultTimeProvider(),
		temperature:    DefaultTemperature,
	}
}

// WithBehaviorAndContext adds instructions to the default system prompt.
func (a *Agent) WithBehaviorAndContext(prompt string) *Agent {
	a.behaviorAndContext = prompt
	return a
}

// WithSystemTemplate replaces the system prompt template.
func (a *Agent) WithSystemTemplate(tmpl *template.Template) *Agent {
	a.systemTemplate = tmpl
	return a
}

// WithTemperature sets the sampling temperature.
func (a *Agent) WithTemperature(t float64) *Agent {
	a.temperature = t
	return a
}

// WithTimeProvider sets the clock used by templates.
func (a *Agent) WithTimeProvider(tp todoagent.TimeProvider) *Agent {
	a.timeProvider = tp
	return a
}

// SystemPrompt renders the system prompt.
func (a *Agent) SystemPrompt() (string, error) {
	var tools strings.Builder
	for i, def := range a.toolChain.Definitions() {
		if i > 0 {
			tools.WriteString("\n")
		}
		fmt.Fprintf(&tools, "- %s: %s", def.Function.Name, def.Function.Description)
	}

	var buf bytes.Buffer
	err := a.systemTemplate.Execute(&buf, SystemPromptData{
		BehaviorAndContext: a.behaviorAndContext,
		ToolsPrompt:        tools.String(),
		Time:               a.timeProvider,
	})
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return buf.String(), nil
}

// Next runs one Decide step and, when the model asked for tools, one Act step.
func (a *Agent) Next(execCtx *todoagent.ExecutionContext) (*todoagent.AgentLoopResult, error) {
	data := execCtx.Data()

	choice, err := a.decide(execCtx, data)
	if err != nil {
		return nil, err
	}

	if len(choice.ToolCalls) == 0 {
		return &todoagent.AgentLoopResult{
			Action: todoagent.LATerminate,
			Result: extractAnswer(choice.Content),
		}, nil
	}

	observation := a.act(execCtx, data, choice.ToolCalls)
	return &todoagent.AgentLoopResult{
		Action:      todoagent.LAContinue,
		Observation: observation,
	}, nil
}

// decide calls the model with the tool definitions and records its reply.
func (a *Agent) decide(
	execCtx *todoagent.ExecutionContext,
	data todoagent.LoopData,
) (*todoagent.ContentChoice, error) {
	systemContent, err := a.SystemPrompt()
	if err != nil {
		return nil, err
	}

	history := data.GetMessages()
	messages := make([]llms.MessageContent, 0, len(history)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemContent))
	messages = append(messages, history...)

	response, err := a.model.GenerateContent(
		execCtx.Context(),
		execCtx,
		messages,
		llms.WithTools(a.toolChain.Definitions()),
		llms.WithTemperature(a.temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	choice := response.FirstChoice()
	if choice == nil {
		choice = &todoagent.ContentChoice{}
	}
	data.AppendMessages(aiMessage(choice))
	return choice, nil
}

// act runs every tool call in order and appends one tool message per call. The returned
// observation joins the results, one per line.
func (a *Agent) act(
	execCtx *todoagent.ExecutionContext,
	data todoagent.LoopData,
	calls []llms.ToolCall,
) string {
	observations := make([]string, 0, len(calls))
	for _, call := range calls {
		resp, err := a.toolChain.Execute(execCtx, call)
		if err != nil {
			execCtx.FireError(err, false)
		}
		data.AppendMessages(llms.MessageContent{
			Role:  llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{resp},
		})
		observations = append(observations, resp.Content)
	}
	return strings.Join(observations, "\n")
}

// aiMessage builds the assistant message holding the reply text and its tool calls.
func aiMessage(choice *todoagent.ContentChoice) llms.MessageContent {
	parts := make([]llms.ContentPart, 0, len(choice.ToolCalls)+1)
	if choice.Content != "" {
		parts = append(parts, llms.TextContent{Text: choice.Content})
	}
	for _, call := range choice.ToolCalls {
		parts = append(parts, call)
	}
	return llms.MessageContent{Role: llms.ChatMessageTypeAI, Parts: parts}
}

// extractAnswer returns the Final Answer text when present, otherwise the trimmed reply.
func extractAnswer(content string) string {
	if step := format.ParseStep(content); step.Kind == format.StepFinalAnswer {
		return step.FinalAnswer
	}
	return strings.TrimSpace(content)
}

// Compile-time check that Agent implements todoagent.AgentLoop.
var _ todoagent.AgentLoop = (*Agent)(nil)
