package domain

type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionPlanning  SessionStatus = "planning"
	SessionActive    SessionStatus = "active"
	SessionLocked    SessionStatus = "locked"
	SessionCompleted SessionStatus = "completed"
)

// sessionTransitions is the full transition table for session status.
// Forward-only, except active <-> locked which may flip both ways.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionDraft:     {SessionPlanning},
	SessionPlanning:  {SessionActive},
	SessionActive:    {SessionLocked, SessionCompleted},
	SessionLocked:    {SessionActive, SessionCompleted},
	SessionCompleted: {},
}

// CanTransition reports whether moving from one session status to
// another is permitted by the state machine.
func CanTransition(from, to SessionStatus) bool {
	for _, next := range sessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidSessionStatuses is the canonical set of accepted status strings.
var ValidSessionStatuses = map[string]bool{
	"draft": true, "planning": true, "active": true,
	"locked": true, "completed": true,
}

type DependencyKind string

const (
	DepBlockedBy DependencyKind = "blocked_by"
	DepBlocks    DependencyKind = "blocks"
	DepRelatesTo DependencyKind = "relates_to"
)

// ValidDependencyKinds is the canonical set of accepted dependency kind strings.
var ValidDependencyKinds = map[string]bool{
	"blocked_by": true, "blocks": true, "relates_to": true,
}

type CyclePolicy string

const (
	// CycleWarn surfaces dependency cycles as warnings only.
	CycleWarn CyclePolicy = "warn"
	// CycleBlockActivation refuses the planning -> active transition
	// while the backlog contains a dependency cycle.
	CycleBlockActivation CyclePolicy = "block_activation"
)
