// Package lifecycle defines application statuses and the transition policy
// governing status changes.
package lifecycle

import "fmt"

// Status is an application's position in the hiring funnel
type Status string

// Application statuses. Pending is the initial status; accepted and rejected
// are the terminal outcomes, though the policy may still allow corrections
// out of them.
const (
	StatusPending      Status = "pending"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusRejected     Status = "rejected"
	StatusAccepted     Status = "accepted"
)

// Known lists the recognized statuses in funnel order
func Known() []Status {
	return []Status{StatusPending, StatusApplied, StatusInterviewing, StatusRejected, StatusAccepted}
}

// Parse validates a raw status string
func Parse(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusPending, StatusApplied, StatusInterviewing, StatusRejected, StatusAccepted:
		return s, nil
	}
	return "", fmt.Errorf("unknown status: %q", raw)
}

// Policy decides which status transitions are legal
type Policy interface {
	// Allowed reports whether an application may move from one status to
	// another. Setting the current status again is always allowed.
	Allowed(from, to Status) bool
	// Name identifies the policy in configuration and logs
	Name() string
}

// Permissive allows any status to be set at any time. Mirrors the observed
// behavior of the system this replaces: corrections such as rejected back to
// interviewing are legal.
type Permissive struct{}

// Allowed always returns true for recognized statuses
func (Permissive) Allowed(_, _ Status) bool { return true }

// Name identifies the policy
func (Permissive) Name() string { return "permissive" }

// forwardRank orders statuses along the funnel. Rejected and accepted share
// the terminal rank.
var forwardRank = map[Status]int{
	StatusPending:      0,
	StatusApplied:      1,
	StatusInterviewing: 2,
	StatusRejected:     3,
	StatusAccepted:     3,
}

// ForwardOnly restricts transitions to the forward arrows of the funnel:
// pending -> applied -> interviewing -> {accepted, rejected}.
type ForwardOnly struct{}

// Allowed permits only same-status or strictly forward moves
func (ForwardOnly) Allowed(from, to Status) bool {
	if from == to {
		return true
	}
	return forwardRank[to] > forwardRank[from]
}

// Name identifies the policy
func (ForwardOnly) Name() string { return "forward-only" }

// PolicyByName resolves a configured policy name. The empty string selects
// the permissive default.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "permissive":
		return Permissive{}, nil
	case "forward-only":
		return ForwardOnly{}, nil
	}
	return nil, fmt.Errorf("unknown transition policy: %q", name)
}
