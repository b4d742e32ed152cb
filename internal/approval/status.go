package approval

import (
	"time"

	"github.com/frahmantamala/portal-management/internal"
)

// Status is the review state of a piece of content. Posts and documents
// share the same lifecycle: non-admin submissions wait in PENDING until an
// admin approves or rejects them; a rejected item can be resubmitted and
// reviewed again, so no state is terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a wire value into a Status, rejecting anything
// outside the closed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", internal.NewValidationError("status must be PENDING, APPROVED or REJECTED", internal.ErrCodeInvalidStatus)
	}
	return s, nil
}

// DecisionStatus maps a reviewer's boolean decision onto the target state.
func DecisionStatus(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

// ReviewState carries the status plus reviewer attribution that a
// transition produces.
type ReviewState struct {
	Status       Status
	ReviewedByID *int64
	ReviewedAt   *time.Time
}

// InitialState returns the state a freshly created item starts in.
// Admin-authored content is live immediately with the creator recorded as
// its reviewer; everyone else's content waits for review.
func InitialState(c Caller, now time.Time) ReviewState {
	if c.IsAdmin() {
		return ReviewState{
			Status:       StatusApproved,
			ReviewedByID: &c.ID,
			ReviewedAt:   &now,
		}
	}
	return ReviewState{Status: StatusPending}
}

// DecidedState returns the state after an approve/reject call. Legal from
// any prior state: repeated approvals simply refresh the attribution to the
// latest reviewer and time.
func DecidedState(reviewer Caller, approved bool, now time.Time) ReviewState {
	return ReviewState{
		Status:       DecisionStatus(approved),
		ReviewedByID: &reviewer.ID,
		ReviewedAt:   &now,
	}
}
