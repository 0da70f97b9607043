package react

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/rickchristie/todoagent"
)

//go:embed template_system.tmpl
var reactSystemTemplateContent string

// SystemPromptData contains the data passed to the system template.
type SystemPromptData struct {
	// BehaviorAndContext contains extra instructions provided by the caller.
	BehaviorAndContext string

	// OutputPrompt describes the Thought / Action / Action Input / Final Answer grammar.
	OutputPrompt string

	// ToolsPrompt lists the available tools, one per line.
	ToolsPrompt string

	// Time provides access to time-related functions in templates.
	// Use {{.Time.Format "2006-01-02"}}.
	Time todoagent.TimeProvider
}

// DefaultSystemTemplate is the default template for the system prompt.
// Replace it with Agent.WithSystemTemplate.
var DefaultSystemTemplate = template.Must(
	template.New("react_system").Parse(reactSystemTemplateContent),
)

// ExecuteTemplate executes a template with the given data and returns the result.
func ExecuteTemplate(tmpl *template.Template, data SystemPromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
