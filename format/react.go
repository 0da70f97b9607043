package format

import (
	"fmt"
	"strings"
)

// Line prefixes of the ReAct grammar.
const (
	PrefixThought     = "Thought:"
	PrefixAction      = "Action:"
	PrefixActionInput = "Action Input:"
	PrefixObservation = "Observation:"
	PrefixFinalAnswer = "Final Answer:"
)

// NoneAction is the action name the model uses when it wants no tool this step.
const NoneAction = "none"

// StepKind tags what a parsed model output asks for.
type StepKind int

const (
	// StepMalformed means the output carried no thought, action or final answer.
	StepMalformed StepKind = iota
	// StepThought means the output only carried reasoning.
	StepThought
	// StepAction means the output named an action, possibly "none".
	StepAction
	// StepFinalAnswer means the output carried a non-empty final answer.
	StepFinalAnswer
)

func (k StepKind) String() string {
	switch k {
	case StepThought:
		return "thought"
	case StepAction:
		return "action"
	case StepFinalAnswer:
		return "final_answer"
	default:
		return "malformed"
	}
}

// Step is one model output parsed against the ReAct grammar.
//
// Kind is derived from the fields: a non-empty FinalAnswer wins over an Action, an Action wins
// over a Thought. Fields keep their raw (trimmed) text; use [CleanActionInput] before handing
// ActionInput to a tool.
type Step struct {
	Kind        StepKind
	Thought     string
	Action      string
	ActionInput string
	FinalAnswer string
	Raw         string
}

// IsNoop reports whether the step asks for no tool: the action is empty or "none".
func (s Step) IsNoop() bool {
	return s.Action == "" || strings.EqualFold(s.Action, NoneAction)
}

// ParseStep parses model output line by line.
//
// Each line is trimmed before matching a prefix. A repeated prefix overwrites the earlier
// value. Once a "Final Answer:" line is seen, it and every line after it, prefixed or not,
// become the answer; the joined answer is trimmed at both ends. Text outside any prefix
// before the final answer is ignored.
func ParseStep(text string) Step {
	step := Step{Raw: text}

	var (
		collectingFinal bool
		finalLines      []string
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if collectingFinal {
			finalLines = append(finalLines, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, PrefixThought):
			step.Thought = strings.TrimSpace(line[len(PrefixThought):])
		case strings.HasPrefix(line, PrefixActionInput):
			step.ActionInput = strings.TrimSpace(line[len(PrefixActionInput):])
		case strings.HasPrefix(line, PrefixAction):
			step.Action = strings.TrimSpace(line[len(PrefixAction):])
		case strings.HasPrefix(line, PrefixFinalAnswer):
			collectingFinal = true
			finalLines = append(finalLines, strings.TrimSpace(line[len(PrefixFinalAnswer):]))
		}
	}

	step.FinalAnswer = strings.TrimSpace(strings.Join(finalLines, "\n"))

	switch {
	case step.FinalAnswer != "":
		step.Kind = StepFinalAnswer
	case step.Action != "":
		step.Kind = StepAction
	case step.Thought != "":
		step.Kind = StepThought
	default:
		step.Kind = StepMalformed
	}

	return step
}

// CleanActionInput trims whitespace, then any surrounding double and single quotes.
//
//	CleanActionInput(`  "buy milk" `) // buy milk
//	CleanActionInput(`'"x"'`)         // x
func CleanActionInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.Trim(s, `'`)
}

// FormatObservation renders a tool result as the message fed back to the model.
func FormatObservation(observation string) string {
	return PrefixObservation + " " + observation
}

// ReAct describes the Thought / Action / Action Input / Final Answer grammar to the model.
type ReAct struct {
	actions []string
}

// NewReAct creates a ReAct format whose Action line lists the given tool names plus "none".
func NewReAct(toolNames ...string) *ReAct {
	return &ReAct{actions: toolNames}
}

// DescribeStructure returns the grammar block placed in the system prompt.
func (f *ReAct) DescribeStructure() string {
	actions := append(append([]string{}, f.actions...), NoneAction)

	var sb strings.Builder
	sb.WriteString("You MUST follow this exact format:\n\n")
	fmt.Fprintf(&sb, "%s <your reasoning about what to do next>\n", PrefixThought)
	fmt.Fprintf(&sb, "%s <%s>\n", PrefixAction, strings.Join(actions, " OR "))
	fmt.Fprintf(&sb, "%s <string for the action or \"None\">\n", PrefixActionInput)
	fmt.Fprintf(&sb, "%s <this will be provided by the system>\n\n", PrefixObservation)
	sb.WriteString("When you have completed all necessary actions and answered the user, output:\n\n")
	fmt.Fprintf(&sb, "%s <your final answer to the user>\n", PrefixFinalAnswer)
	return sb.String()
}
