package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agendadoc/booking-platform/internal/draft"
	"github.com/agendadoc/booking-platform/internal/observability/metrics"
	"github.com/agendadoc/booking-platform/internal/practitioner"
	"github.com/agendadoc/booking-platform/internal/recent"
	"github.com/agendadoc/booking-platform/internal/wizard"
	"github.com/agendadoc/booking-platform/pkg/logging"
)

// WizardHandler exposes the booking wizard to the mobile client.
type WizardHandler struct {
	svc     *wizard.Service
	recents *recent.Store
	metrics *metrics.WizardMetrics
	logger  *logging.Logger
}

// NewWizardHandler creates the wizard HTTP handler.
func NewWizardHandler(svc *wizard.Service, recents *recent.Store, m *metrics.WizardMetrics, logger *logging.Logger) *WizardHandler {
	if svc == nil {
		panic("handlers: wizard service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WizardHandler{svc: svc, recents: recents, metrics: m, logger: logger}
}

// CreateSession starts a new wizard session with an empty draft.
// POST /v1/sessions
func (h *WizardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	pracID, ok := practitioner.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing practitioner id")
		return
	}
	session := h.svc.Manager().Create(pracID)
	h.metrics.ObserveSessionStarted()
	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// GetSession returns the session snapshot including derived totals.
// GET /v1/sessions/{sessionID}
func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type setPatientRequest struct {
	CPF   string `json:"cpf"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	// Record is the raw upstream search result, retained through
	// normalization for the recent-patient list.
	Record json.RawMessage `json:"record,omitempty"`
}

// SetPatient records the chosen patient and feeds the recency cache.
// PUT /v1/sessions/{sessionID}/patient
func (h *WizardHandler) SetPatient(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req setPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.CPF == "" {
		writeError(w, http.StatusBadRequest, "cpf is required")
		return
	}
	if err := session.SetPatient(req.CPF, req.Name, req.Phone); err != nil {
		h.writeWizardError(w, err)
		return
	}

	if h.recents != nil {
		entry := recent.Entry{CPF: req.CPF, Name: req.Name, Phone: req.Phone, Raw: req.Record}
		if len(req.Record) > 0 {
			entry = recent.Normalize(req.Record)
			// The explicit selection wins over whatever the raw record says.
			entry.CPF = req.CPF
			if req.Name != "" {
				entry.Name = req.Name
			}
			if req.Phone != "" {
				entry.Phone = req.Phone
			}
		}
		h.recents.AddBestEffort(r.Context(), session.PractitionerID, entry)
	}

	writeJSON(w, http.StatusOK, session.Snapshot())
}

// AddService appends a service selection; duplicate ids are a no-op.
// POST /v1/sessions/{sessionID}/services
func (h *WizardHandler) AddService(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var sel draft.ServiceSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if sel.ID == "" {
		writeError(w, http.StatusBadRequest, "service id is required")
		return
	}
	if err := session.AddService(sel); err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// RemoveService drops a service selection; absent ids are a no-op.
// DELETE /v1/sessions/{sessionID}/services/{serviceID}
func (h *WizardHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	serviceID := chi.URLParam(r, "serviceID")
	if serviceID == "" {
		writeError(w, http.StatusBadRequest, "missing serviceID")
		return
	}
	if err := session.RemoveService(serviceID); err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type setScheduleRequest struct {
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	LocationID string `json:"location_id"`
}

// SetSchedule records the date, time and location choices.
// PUT /v1/sessions/{sessionID}/schedule
func (h *WizardHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req setScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := session.SetSchedule(req.Date, req.TimeSlot, req.LocationID); err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type setDetailsRequest struct {
	Description       string `json:"description"`
	Note              string `json:"note"`
	ServiceCategoryID string `json:"service_category_id"`
	ServiceTypeID     string `json:"service_type_id"`
	AppointmentTypeID string `json:"appointment_type_id"`
}

// SetDetails records the final-step fields.
// PUT /v1/sessions/{sessionID}/details
func (h *WizardHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req setDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := session.SetDetails(req.Description, req.Note, req.ServiceCategoryID, req.ServiceTypeID, req.AppointmentTypeID); err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Advance moves the wizard forward when the current step's gate passes.
// POST /v1/sessions/{sessionID}/advance
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	from, to, err := session.Advance()
	if err != nil {
		if errors.Is(err, wizard.ErrGateBlocked) {
			h.metrics.ObserveGateBlocked(wizard.StepLabel(from))
		}
		h.writeWizardError(w, err)
		return
	}
	h.metrics.ObserveAdvance(wizard.StepLabel(from))
	writeJSON(w, http.StatusOK, map[string]any{"step": to})
}

// Back moves the wizard one step backward; draft data is preserved.
// POST /v1/sessions/{sessionID}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	step, err := session.Back()
	if err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"step": step})
}

// Cancel ends the session and discards the draft.
// POST /v1/sessions/{sessionID}/cancel
func (h *WizardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.Cancel(); err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(wizard.StateCancelled)})
}

// Submit normalizes the draft and calls the appointment creation API.
// POST /v1/sessions/{sessionID}/submit
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionID")
		return
	}
	createdID, err := h.svc.Submit(r.Context(), sessionID)
	if err != nil {
		h.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"appointment_id": createdID})
}

func (h *WizardHandler) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionID")
		return nil, false
	}
	session, err := h.svc.Manager().Get(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}

// writeWizardError maps core errors onto HTTP statuses. Anything the wizard
// does not recognize is an upstream failure: the draft survives it and the
// client retries manually.
func (h *WizardHandler) writeWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, wizard.ErrGateBlocked):
		writeError(w, http.StatusConflict, "step requirements not met")
	case errors.Is(err, wizard.ErrSessionClosed),
		errors.Is(err, wizard.ErrAtFirstStep),
		errors.Is(err, wizard.ErrSubmitRequired),
		errors.Is(err, wizard.ErrSubmitInFlight),
		errors.Is(err, wizard.ErrNotSubmittable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("wizard request failed", "error", err)
		writeError(w, http.StatusBadGateway, "upstream request failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
