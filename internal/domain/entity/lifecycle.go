package entity

// State is the tagged lifecycle state derived from a story's flags.
// The recommended bit is orthogonal and not part of the state; it may be
// set in any state.
type State int

const (
	// StateDraft means the story is not publicly visible.
	StateDraft State = iota
	// StatePublished means the story is publicly visible.
	StatePublished
	// StatePublishedRadar means the story is published and is the single
	// radar-featured story.
	StatePublishedRadar
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StatePublished:
		return "published"
	case StatePublishedRadar:
		return "published_radar"
	default:
		return "unknown"
	}
}

// State derives the lifecycle state from the story's flags.
// A radar flag on an unpublished story is not a representable state; the
// transition function below never produces it and the storage layer keeps
// the combination out via guarded updates.
func (s *Story) State() State {
	switch {
	case s.IsPublished && s.IsRadar:
		return StatePublishedRadar
	case s.IsPublished:
		return StatePublished
	default:
		return StateDraft
	}
}

// Transition is a lifecycle event applied to a story.
type Transition int

const (
	// TransitionPublish moves a story to the Published state.
	TransitionPublish Transition = iota
	// TransitionUnpublish moves a story back to Draft. Rejected while the
	// story holds the radar slot.
	TransitionUnpublish
	// TransitionPromoteRadar marks a published story as the radar story.
	// The singleton aspect (clearing the previous holder) is enforced at
	// the storage layer; this validates the per-story precondition.
	TransitionPromoteRadar
	// TransitionDemoteRadar clears the radar flag.
	TransitionDemoteRadar
)

// Apply validates and applies a lifecycle transition. It is the single
// place where flag combinations are checked; callers must not mutate the
// lifecycle flags directly.
func (s *Story) Apply(t Transition) error {
	switch t {
	case TransitionPublish:
		s.IsPublished = true
	case TransitionUnpublish:
		if s.IsRadar {
			return ErrRadarConflict
		}
		s.IsPublished = false
	case TransitionPromoteRadar:
		if !s.IsPublished {
			return ErrNotPublished
		}
		s.IsRadar = true
	case TransitionDemoteRadar:
		s.IsRadar = false
	default:
		return ErrInvalidTransition
	}
	return nil
}

// CanDelete reports whether the story may be hard-deleted. Deletion is
// allowed only for fully retired stories: unpublished, not on radar, not
// recommended.
func (s *Story) CanDelete() error {
	if s.IsPublished || s.IsRadar || s.IsRecommended {
		return ErrDeleteGuard
	}
	return nil
}
