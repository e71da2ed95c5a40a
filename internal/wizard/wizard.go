// Package wizard owns the multi-step appointment booking flow: per-session
// draft state, the per-step readiness gates, forward/backward navigation and
// the final submission against the appointment API.
package wizard

import "errors"

// Step numbers the six screens of the booking flow.
type Step int

const (
	StepPatient  Step = 1
	StepServices Step = 2
	StepDate     Step = 3
	StepTime     Step = 4
	StepLocation Step = 5
	StepDetails  Step = 6

	firstStep = StepPatient
	lastStep  = StepDetails
)

// State tracks where a wizard session is in its lifecycle.
type State string

const (
	StateStep       State = "step"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("wizard: session not found")
	// ErrSessionClosed is returned when a completed or cancelled session is mutated.
	ErrSessionClosed = errors.New("wizard: session is closed")
	// ErrGateBlocked is returned when the current step's gate rejects forward navigation.
	ErrGateBlocked = errors.New("wizard: step requirements not met")
	// ErrAtFirstStep is returned when navigating back from step one.
	ErrAtFirstStep = errors.New("wizard: already at the first step")
	// ErrSubmitRequired is returned when advancing past the final step; the
	// only way forward from there is submission.
	ErrSubmitRequired = errors.New("wizard: final step reached, submit to continue")
	// ErrSubmitInFlight is returned when a session is mutated or navigated
	// while a submission attempt is still running.
	ErrSubmitInFlight = errors.New("wizard: submission in progress")
	// ErrNotSubmittable is returned when submitting from any step but the last.
	ErrNotSubmittable = errors.New("wizard: submission is only allowed from the final step")
)
