package todoagent

// DefaultMaxSteps is the default number of model calls allowed for a single user request.
const DefaultMaxSteps = 6

// StepLimitMessage is returned to the user when no final answer was produced within the
// step cap.
const StepLimitMessage = "Unable to complete within max steps."

// NoActionObservation is the observation fed back when the model asked for no action, an
// unknown action, or produced nothing that could be acted on.
const NoActionObservation = "No action taken."
