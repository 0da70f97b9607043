package todoagent

// =============================================================================
// OpenAI Models
// https://platform.openai.com/docs/models/
// =============================================================================

const (
	// GPT-4.1 Series
	ModelOpenAIGPT41     = "gpt-4.1"
	ModelOpenAIGPT41Mini = "gpt-4.1-mini"
	ModelOpenAIGPT41Nano = "gpt-4.1-nano"

	// GPT-4o Series
	ModelOpenAIGPT4o     = "gpt-4o"
	ModelOpenAIGPT4oMini = "gpt-4o-mini"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = ModelOpenAIGPT41Mini

// Tool names understood by the agent loops.
const (
	ToolAddItem    = "add_item"
	ToolRemoveItem = "remove_item"
	ToolListItems  = "list_items"
)
