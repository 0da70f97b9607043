// Package react implements the hand-rolled ReAct (Reasoning and Acting) loop.
//
// The model is asked to answer in a fixed line grammar:
//
//	Thought: I need to add the item.
//	Action: add_item
//	Action Input: "buy milk"
//
// The agent parses the response with format.ParseStep, runs at most one action through a
// toolchain.Text, and appends "Observation: <result>" to the conversation before the next step.
// A response with "Final Answer:" ends the loop; the final answer always wins over an action
// in the same response.
//
// Nothing the model writes is fatal. Unknown actions, "none", bare thoughts and unparseable
// text all produce the observation "No action taken." so the model can correct itself on the
// next step. Bounding the number of steps is the executor's job.
//
// # Example
//
//	list := todo.NewList()
//	tc := toolchain.NewText()
//	for _, tool := range todo.NewTools(list) {
//	    tc.RegisterTool(tool)
//	}
//	agent := react.NewAgent(model, tc)
//	exec := executor.New(agent, executor.DefaultConfig())
package react
