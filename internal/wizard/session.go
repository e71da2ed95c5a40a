package wizard

import (
	"sync"
	"time"

	"github.com/agendadoc/booking-platform/internal/draft"
)

// Session is one in-progress booking wizard. The mobile client mounts one
// step screen at a time, but its requests still arrive over HTTP, so every
// accessor takes the session lock. The draft lives only in memory; a process
// restart discards in-flight wizards.
type Session struct {
	mu sync.Mutex

	ID             string
	PractitionerID string

	draft     draft.Draft
	state     State
	step      Step
	searchGen uint64

	createdAt time.Time
	lastTouch time.Time
}

func newSession(id, practitionerID string, now time.Time) *Session {
	s := &Session{
		ID:             id,
		PractitionerID: practitionerID,
		state:          StateStep,
		step:           firstStep,
		createdAt:      now,
		lastTouch:      now,
	}
	s.draft.SetPractitioner(practitionerID)
	return s
}

// Snapshot is a read-only copy of the session for API responses.
type Snapshot struct {
	ID             string      `json:"id"`
	PractitionerID string      `json:"practitioner_id"`
	State          State       `json:"state"`
	Step           Step        `json:"step"`
	Draft          draft.Draft `json:"draft"`
	TotalValue     float64     `json:"total_services_value"`
	TotalDuration  int         `json:"total_duration_minutes"`
	CanProceed     bool        `json:"can_proceed"`
}

// Snapshot returns the current session state including derived totals.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:             s.ID,
		PractitionerID: s.PractitionerID,
		State:          s.state,
		Step:           s.step,
		Draft:          s.draft.Clone(),
		TotalValue:     s.draft.TotalServicesValue(),
		TotalDuration:  s.draft.TotalDuration(),
		CanProceed:     CanProceed(&s.draft, s.step),
	}
}

func (s *Session) closed() bool {
	return s.state == StateCompleted || s.state == StateCancelled
}

// mutate runs fn against the draft unless the session is terminal or a
// submission is in flight.
func (s *Session) mutate(fn func(d *draft.Draft)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	fn(&s.draft)
	s.lastTouch = time.Now()
	return nil
}

// SetPatient records the chosen patient on the draft.
func (s *Session) SetPatient(cpf, name, phone string) error {
	return s.mutate(func(d *draft.Draft) { d.SetPatient(cpf, name, phone) })
}

// AddService records a service selection; duplicate ids are a no-op.
func (s *Session) AddService(sel draft.ServiceSelection) error {
	return s.mutate(func(d *draft.Draft) { d.AddService(sel) })
}

// RemoveService drops a service selection; absent ids are a no-op.
func (s *Session) RemoveService(id string) error {
	return s.mutate(func(d *draft.Draft) { d.RemoveService(id) })
}

// SetSchedule records the date, time slot and location choices.
func (s *Session) SetSchedule(date, timeSlot, locationID string) error {
	return s.mutate(func(d *draft.Draft) { d.SetSchedule(date, timeSlot, locationID) })
}

// SetDetails records the final-step fields.
func (s *Session) SetDetails(description, note, serviceCategoryID, serviceTypeID, appointmentTypeID string) error {
	return s.mutate(func(d *draft.Draft) {
		d.SetDetails(description, note, serviceCategoryID, serviceTypeID, appointmentTypeID)
	})
}

// Advance moves forward one step when the current step's gate passes. It
// returns both the originating and the resulting step so callers can report
// the transition without a separate, racy read. From the final step the only
// way forward is Submit.
func (s *Session) Advance() (from, to Step, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return s.step, s.step, ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return s.step, s.step, ErrSubmitInFlight
	}
	if s.step == lastStep {
		return s.step, s.step, ErrSubmitRequired
	}
	if !CanProceed(&s.draft, s.step) {
		return s.step, s.step, ErrGateBlocked
	}
	from = s.step
	s.step++
	s.lastTouch = time.Now()
	return from, s.step, nil
}

// Back moves one step backward. Backward navigation is always allowed and
// never clears draft data.
func (s *Session) Back() (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return s.step, ErrSessionClosed
	}
	if s.step == firstStep {
		return s.step, ErrAtFirstStep
	}
	s.step--
	s.lastTouch = time.Now()
	return s.step, nil
}

// Cancel ends the session and resets the draft. Cancelling twice is an error.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return ErrSessionClosed
	}
	s.draft.Reset()
	s.state = StateCancelled
	s.lastTouch = time.Now()
	return nil
}

// beginSubmit transitions step six into the submitting state and returns a
// copy of the draft for payload assembly.
func (s *Session) beginSubmit() (draft.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return draft.Draft{}, ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return draft.Draft{}, ErrSubmitInFlight
	}
	if s.step != lastStep {
		return draft.Draft{}, ErrNotSubmittable
	}
	if !CanProceed(&s.draft, lastStep) {
		return draft.Draft{}, ErrGateBlocked
	}
	s.state = StateSubmitting
	s.lastTouch = time.Now()
	return s.draft.Clone(), nil
}

// finishSubmit records the outcome of a submission attempt. Success resets
// the draft and completes the session; failure returns to the final step
// with every draft field intact so the user can retry.
func (s *Session) finishSubmit(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitting {
		return
	}
	if ok {
		s.draft.Reset()
		s.state = StateCompleted
	} else {
		s.state = StateStep
	}
	s.lastTouch = time.Now()
}

// BeginSearch starts a new patient/catalog search and returns its generation.
// A later BeginSearch supersedes earlier ones; responses carrying a stale
// generation must be dropped by the caller.
func (s *Session) BeginSearch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchGen++
	s.lastTouch = time.Now()
	return s.searchGen
}

// SearchCurrent reports whether the given generation is still the latest.
func (s *Session) SearchCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.searchGen
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastTouch) > ttl
}
