package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agendadoc/booking-platform/internal/catalog"
	"github.com/agendadoc/booking-platform/internal/patients"
	"github.com/agendadoc/booking-platform/internal/practitioner"
	"github.com/agendadoc/booking-platform/internal/recent"
	"github.com/agendadoc/booking-platform/internal/wizard"
	"github.com/agendadoc/booking-platform/pkg/logging"
)

// PatientSearcher abstracts the patient search collaborator.
type PatientSearcher interface {
	Search(ctx context.Context, term, kind string, page int) (*patients.SearchResult, error)
}

// OfferingLister abstracts the service catalog collaborator.
type OfferingLister interface {
	Offerings(ctx context.Context, kind string, activeOnly bool) ([]catalog.Offering, error)
}

// LookupHandler serves the read-only lookups the wizard screens need:
// recent patients, patient search and the service catalog.
type LookupHandler struct {
	recents  *recent.Store
	searcher PatientSearcher
	catalog  OfferingLister
	sessions *wizard.Manager
	logger   *logging.Logger
}

// NewLookupHandler creates the lookup handler.
func NewLookupHandler(recents *recent.Store, searcher PatientSearcher, offerings OfferingLister, sessions *wizard.Manager, logger *logging.Logger) *LookupHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LookupHandler{
		recents:  recents,
		searcher: searcher,
		catalog:  offerings,
		sessions: sessions,
		logger:   logger,
	}
}

// RecentPatients returns the practitioner's recency list, most recent first.
// GET /v1/recent-patients
func (h *LookupHandler) RecentPatients(w http.ResponseWriter, r *http.Request) {
	pracID, ok := practitioner.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing practitioner id")
		return
	}
	entries, err := h.recents.Load(r.Context(), pracID)
	if err != nil {
		h.logger.Error("failed to load recent patients", "practitioner_id", pracID, "error", err)
		writeError(w, http.StatusBadGateway, "recent patients unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patients": entries})
}

// SearchPatients proxies the upstream patient search. When a session id is
// supplied the search joins that session's generation sequence: a response
// that was superseded by a newer search comes back empty and flagged, so the
// client never renders results for a query the user has already abandoned.
// GET /v1/patients/search?term=&type=&page=&session_id=
func (h *LookupHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		writeError(w, http.StatusBadRequest, "missing term")
		return
	}
	kind := r.URL.Query().Get("type")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	var session *wizard.Session
	var gen uint64
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		s, err := h.sessions.Get(sessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		session = s
		gen = session.BeginSearch()
	}

	result, err := h.searcher.Search(r.Context(), term, kind, page)
	if err != nil {
		h.logger.Error("patient search failed", "error", err)
		writeError(w, http.StatusBadGateway, "patient search unavailable")
		return
	}

	if session != nil && !session.SearchCurrent(gen) {
		writeJSON(w, http.StatusOK, map[string]any{
			"records":    []any{},
			"superseded": true,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Offerings returns the bookable services from the catalog.
// GET /v1/offerings?kind=&active=
func (h *LookupHandler) Offerings(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	activeOnly := r.URL.Query().Get("active") == "true"

	offerings, err := h.catalog.Offerings(r.Context(), kind, activeOnly)
	if err != nil {
		h.logger.Error("catalog fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "service catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"offerings": offerings})
}

// Health reports liveness.
// GET /health
func (h *LookupHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
