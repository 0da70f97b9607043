// Package todoagent provides the building blocks of a small ReAct agent that manages a to-do
// list by asking an LLM to pick between three tools (add, remove, list) and a final answer.
//
// The root package holds the types every other package shares. Concrete behavior lives in
// subpackages:
//
//   - todo: the to-do list and the three tools bound to it
//   - format: the Thought / Action / Action Input / Final Answer grammar and its parser
//   - toolchain: tool registries for free-text actions and native tool calls
//   - agents/react: the hand-rolled Thought -> Action -> Observation loop
//   - agents/toolcall: the Decide -> Act loop over native tool calls
//   - executor: drives an AgentLoop under a step cap
//   - session: owns one to-do list and runs user requests through an agent
//
// # Quick Start
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel(todoagent.ModelOpenAIGPT41Mini))
//	model := models.NewLCGWrapper(llm).WithModelName(todoagent.ModelOpenAIGPT41Mini)
//
//	sess, err := session.New(model, session.DefaultSettings())
//	if err != nil {
//	    return err
//	}
//	answer, err := sess.Handle(ctx, "add buy milk, then list my items")
//
// # Agent Loop
//
// An [AgentLoop] performs one iteration per [AgentLoop.Next] call: it builds the prompt from
// the [Conversation] held in the [ExecutionContext], calls the [Model], acts on the response,
// and reports whether to continue. The executor stops after a fixed number of iterations
// and returns [StepLimitMessage] if no final answer was produced.
//
// # Hooks
//
// Hooks observe execution without changing it. Implement any of the hook interfaces in
// hooks.go and register the value with hooks.Registry; the transcript writer, the console
// progress printer and the diagnostics logger are all hooks.
package todoagent
