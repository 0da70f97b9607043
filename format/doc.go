// Package format implements the text grammar the ReAct loop asks the model to follow:
//
//	Thought: <reasoning>
//	Action: <tool name or none>
//	Action Input: <single string>
//	Final Answer: <answer for the user>
//
// [ReAct.DescribeStructure] renders the grammar for the system prompt and [ParseStep] turns a
// model response back into a [Step]. Parsing never fails: output that matches nothing is a
// [StepMalformed] step and it is up to the agent loop to decide what to do with it.
//
// The toolcall loop also uses [ParseStep] to pull a "Final Answer:" out of a plain text reply.
package format
