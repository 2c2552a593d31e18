package viewer

// Exit codes reported for each terminal decision.
const (
	ExitConfirmed = 21
	ExitCancelled = 0
)

// Decision is the user's final choice.
type Decision int

const (
	Pending Decision = iota
	Confirmed
	Cancelled
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ExitCode returns the exit code of a terminal decision. done is false
// while the decision is pending.
func (d Decision) ExitCode() (code int, done bool) {
	switch d {
	case Confirmed:
		return ExitConfirmed, true
	case Cancelled:
		return ExitCancelled, true
	default:
		return 0, false
	}
}

// decisionState resolves at most once.
type decisionState struct {
	current      Decision
	allowConfirm bool
}

// confirm resolves to Confirmed when confirming is allowed and nothing was
// decided yet.
func (s *decisionState) confirm() bool {
	if !s.allowConfirm {
		return false
	}
	return s.resolve(Confirmed)
}

// cancel resolves to Cancelled unless a decision was already made.
func (s *decisionState) cancel() bool {
	return s.resolve(Cancelled)
}

func (s *decisionState) resolve(d Decision) bool {
	if s.current != Pending {
		return false
	}
	s.current = d
	return true
}
