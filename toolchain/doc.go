// Package toolchain turns model output into tool invocations.
//
// Two toolchains share one registry of Tool[I, O] values:
//
//   - [Text] takes an action name and a single free-text input, as written in the ReAct
//     grammar, and binds the input to the tool's first required parameter.
//   - [Native] takes llms.ToolCall values from models with function calling and decodes their
//     JSON arguments.
//
// Tools are invoked through reflection: raw arguments go through a JSON round trip into the
// tool's input type, and the value Call returns becomes the observation. String outputs are
// used as-is; other outputs are rendered as YAML.
//
// Both toolchains fire BeforeToolCall and AfterToolCall through the ExecutionContext when one
// is given. Actions that run nothing (an empty action, "none", or an unknown tool) still fire
// both hooks with Skipped set, so counters and transcripts see every step.
//
// Parameter schemas are compiled when a tool is registered; arguments are not validated
// against them.
package toolchain
