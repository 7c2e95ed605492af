package domain

// Phase is the lifecycle position of a wizard session.
type Phase string

const (
	PhaseEditing    Phase = "editing"    // Visitor is filling steps
	PhaseSubmitting Phase = "submitting" // Exactly one submission is in flight
	PhaseSubmitted  Phase = "submitted"  // Terminal for the session
)

// Locked reports whether field mutations are refused in this phase.
func (p Phase) Locked() bool {
	return p == PhaseSubmitting || p == PhaseSubmitted
}
