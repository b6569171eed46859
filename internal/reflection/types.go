package reflection

import (
	"context"
	"errors"
)

// ErrGeneration indicates the external generation capability failed:
// network fault, quota exhaustion, or a malformed response. The
// orchestrator never retries on its own; reflection generation is a
// user-initiated action and the caller decides whether to re-invoke.
var ErrGeneration = errors.New("generation failed")

// State is a phase of a reflection run.
type State string

const (
	StateRequested  State = "requested"
	StateAssembling State = "assembling"
	StateGenerating State = "generating"
	StatePersisted  State = "persisted"
	StateFailed     State = "failed"
)

// BehaviorEntry is one behavior with its alignment score, as presented to
// the generation capability.
type BehaviorEntry struct {
	Description    string
	AlignmentScore int
}

// PromptContext is the structured payload handed to a Generator: the
// identity being reflected on, its trait names, and the day's behaviors.
// Either list may be empty; the prompt degrades gracefully.
type PromptContext struct {
	IdentityName        string
	IdentityDescription string
	Traits              []string
	Behaviors           []BehaviorEntry
}

// Generator is the external generation capability. Implementations return
// errors wrapping ErrGeneration.
type Generator interface {
	Generate(ctx context.Context, pc PromptContext) (string, error)
}
