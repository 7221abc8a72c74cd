package ingestion

// State tracks a request's progress through the ingestion chain. Transitions
// are strictly forward; StateFailed is reachable from any state and is
// terminal together with StatePersisted.
type State int

const (
	// StateReceived is the initial state of every request.
	StateReceived State = iota + 1
	// StateTextExtracted means the upload's text has been pulled out.
	StateTextExtracted
	// StateGenerationRequested means the backend is resolved and its
	// credential, if any, has passed the probe.
	StateGenerationRequested
	// StateGenerationComplete means at least one Q&A pair was produced.
	StateGenerationComplete
	// StateEmbedding means the document vector is being computed.
	StateEmbedding
	// StatePersisted means the document and its pairs are durably stored.
	StatePersisted
	// StateFailed is the terminal failure state, carrying no rows.
	StateFailed
)

// String returns the state name used in logs and results.
func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateTextExtracted:
		return "text_extracted"
	case StateGenerationRequested:
		return "generation_requested"
	case StateGenerationComplete:
		return "generation_complete"
	case StateEmbedding:
		return "embedding"
	case StatePersisted:
		return "persisted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
