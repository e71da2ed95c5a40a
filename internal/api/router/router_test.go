package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agendadoc/booking-platform/internal/appointments"
	"github.com/agendadoc/booking-platform/internal/catalog"
	"github.com/agendadoc/booking-platform/internal/http/handlers"
	"github.com/agendadoc/booking-platform/internal/observability/metrics"
	"github.com/agendadoc/booking-platform/internal/patients"
	"github.com/agendadoc/booking-platform/internal/wizard"
)

type noopCreator struct{}

func (noopCreator) Create(context.Context, appointments.CreateRequest) (string, error) {
	return "appt-1", nil
}

type noopSearcher struct{}

func (noopSearcher) Search(_ context.Context, _, _ string, page int) (*patients.SearchResult, error) {
	return &patients.SearchResult{Page: page}, nil
}

type noopCatalog struct{}

func (noopCatalog) Offerings(context.Context, string, bool) ([]catalog.Offering, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	manager := wizard.NewManager(time.Minute, nil)
	wm := metrics.NewWizardMetrics(prometheus.NewRegistry())
	svc := wizard.NewService(manager, noopCreator{}, wm, nil)

	return New(&Config{
		WizardHandler: handlers.NewWizardHandler(svc, nil, wm, nil),
		LookupHandler: handlers.NewLookupHandler(nil, noopSearcher{}, noopCatalog{}, manager, nil),
	})
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rr.Code)
	}
}

func TestWizardRoutesRequirePractitioner(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without practitioner header, got %d", rr.Code)
	}
}

func TestCreateSessionThroughRouter(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
	req.Header.Set(practitionerHeader, "prac-1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 from session create, got %d", rr.Code)
	}
}
