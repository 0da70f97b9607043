package todoagent

// TerminationReason describes why an execution stopped.
type TerminationReason string

const (
	// TerminationSuccess means the agent loop produced a final answer.
	TerminationSuccess TerminationReason = "success"

	// TerminationLimitExceeded means the step cap was reached without a final answer.
	// The final result is StepLimitMessage.
	TerminationLimitExceeded TerminationReason = "limit_exceeded"

	// TerminationError means the agent loop returned an error, typically a failed model call.
	TerminationError TerminationReason = "error"

	// TerminationContextCanceled means the context.Context was canceled.
	TerminationContextCanceled TerminationReason = "context_canceled"
)
