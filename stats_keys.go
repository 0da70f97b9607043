package todoagent

// KeyPrefix is the prefix of every stat key recorded by this module.
const KeyPrefix = "todoagent:"

// KeyIterations counts agent loop iterations. Only the executor increments it.
const KeyIterations = "todoagent:iterations"

// Model call tracking keys.
const (
	KeyModelCalls      = "todoagent:model_calls"
	KeyModelCallErrors = "todoagent:model_call_errors"
	KeyInputTokens     = "todoagent:input_tokens"
	KeyOutputTokens    = "todoagent:output_tokens"
)

// Tool call tracking keys.
const (
	KeyToolCalls       = "todoagent:tool_calls"
	KeyToolCallsFor    = "todoagent:tool_calls:" // + tool name
	KeyToolCallErrors  = "todoagent:tool_call_errors"
	KeyNoopActions     = "todoagent:noop_actions"
	KeyMalformedOutput = "todoagent:malformed_responses"
)
