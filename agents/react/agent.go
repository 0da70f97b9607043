package react

import (
	"fmt"
	"text/template"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/format"
	"github.com/rickchristie/todoagent/toolchain"
	"github.com/tmc/langchaingo/llms"
)

// DefaultTemperature is the sampling temperature used unless WithTemperature is called.
const DefaultTemperature = 0.2

// Agent implements the hand-rolled ReAct loop.
// Flow: Think -> Act -> Observe -> Repeat until a final answer.
//
// Every model call sends the system prompt followed by the whole Conversation: the user
// request, each raw assistant response, and each "Observation: ..." message.
type Agent struct {
	behaviorAndContext string
	systemTemplate     *template.Template
	model              todoagent.Model
	toolChain          *toolchain.Text
	timeProvider       todoagent.TimeProvider
	temperature        float64
}

// NewAgent creates a new Agent with the given model and toolchain.
// Defaults:
//   - Temperature: DefaultTemperature
//   - TimeProvider: todoagent.NewDefaultTimeProvider()
//   - SystemTemplate: DefaultSystemTemplate
func NewAgent(model todoagent.Model, tc *toolchain.Text) *Agent {
	return &Agent{
		model:          model,
		toolChain:      tc,
		timeProvider:   todoagent.NewDefaultTimeProvider(),
		systemTemplate: DefaultSystemTemplate,
		temperature:    DefaultTemperature,
	}
}

// WithBehaviorAndContext adds instructions to the default system prompt.
func (r *Agent) WithBehaviorAndContext(prompt string) *Agent {
	r.behaviorAndContext = prompt
	return r
}

// WithSystemTemplate replaces the system prompt template. See SystemPromptData for the fields
// available to it.
func (r *Agent) WithSystemTemplate(tmpl *template.Template) *Agent {
	r.systemTemplate = tmpl
	return r
}

// WithTemperature sets the sampling temperature.
func (r *Agent) WithTemperature(t float64) *Agent {
	r.temperature = t
	return r
}

// WithTimeProvider sets the clock used by templates.
func (r *Agent) WithTimeProvider(tp todoagent.TimeProvider) *Agent {
	r.timeProvider = tp
	return r
}

// SystemPrompt renders the system prompt.
func (r *Agent) SystemPrompt() (string, error) {
	names := r.toolChain.Names()
	return ExecuteTemplate(r.systemTemplate, SystemPromptData{
		BehaviorAndContext: r.behaviorAndContext,
		OutputPrompt:       format.NewReAct(names...).DescribeStructure(),
		ToolsPrompt:        r.toolChain.AvailableToolsPrompt(),
		Time:               r.timeProvider,
	})
}

// Next performs one Thought -> Action -> Observation step.
//
// A final answer terminates the loop even when the same response also names an action; the
// action is not executed. Anything else continues the loop with an observation:
//   - an action runs through the toolchain ("none" and unknown names give "No action taken.")
//   - a thought without an action gives "No action taken."
//   - output matching nothing gives "No action taken." and reports ErrMalformedResponse
//
// Only model failures are returned as errors.
func (r *Agent) Next(execCtx *todoagent.ExecutionContext) (*todoagent.AgentLoopResult, error) {
	data := execCtx.Data()

	messages, err := r.buildMessages(data)
	if err != nil {
		return nil, err
	}

	response, err := r.model.GenerateContent(
		execCtx.Context(),
		execCtx,
		messages,
		llms.WithTemperature(r.temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	var content string
	if choice := response.FirstChoice(); choice != nil {
		content = choice.Content
	}
	data.AppendMessages(llms.TextParts(llms.ChatMessageTypeAI, content))

	step := format.ParseStep(content)

	var observation string
	switch step.Kind {
	case format.StepFinalAnswer:
		return &todoagent.AgentLoopResult{
			Action: todoagent.LATerminate,
			Result: step.FinalAnswer,
		}, nil

	case format.StepAction:
		var toolErr error
		observation, toolErr = r.toolChain.Execute(execCtx, step.Action, step.ActionInput)
		if toolErr != nil {
			execCtx.FireError(toolErr, false)
		}

	case format.StepThought:
		observation = todoagent.NoActionObservation

	default:
		execCtx.Stats().IncrCounter(todoagent.KeyMalformedOutput, 1)
		execCtx.FireError(todoagent.ErrMalformedResponse, false)
		observation = todoagent.NoActionObservation
	}

	data.AppendMessages(llms.TextParts(
		llms.ChatMessageTypeHuman,
		format.FormatObservation(observation),
	))

	return &todoagent.AgentLoopResult{
		Action:      todoagent.LAContinue,
		Observation: observation,
	}, nil
}

// buildMessages prepends the system prompt to the conversation.
func (r *Agent) buildMessages(data todoagent.LoopData) ([]llms.MessageContent, error) {
	systemContent, err := r.SystemPrompt()
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	history := data.GetMessages()
	messages := make([]llms.MessageContent, 0, len(history)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemContent))
	return append(messages, history...), nil
}

// Compile-time check that Agent implements todoagent.AgentLoop.
var _ todoagent.AgentLoop = (*Agent)(nil)
