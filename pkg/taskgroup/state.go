package taskgroup

import "fmt"

// State is the execution state of one node during an invocation.
type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateSkipped
}

func allowedTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateRunning || to == StateSkipped
	case StateRunning:
		return to == StateCompleted || to == StateFailed
	default:
		return false
	}
}

// transition moves n to the given state. A disallowed transition indicates a
// scheduler bug and panics.
func (n *node) transition(to State) {
	if !allowedTransition(n.state, to) {
		panic(fmt.Sprintf("taskgroup: disallowed transition for %q: %s -> %s", n.key, n.state, to))
	}
	n.state = to
}
