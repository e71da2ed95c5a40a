package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agendadoc/booking-platform/internal/practitioner"
)

func TestRequirePractitionerPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := practitioner.FromContext(r.Context())
		if !ok || id != "prac-abc" {
			t.Fatalf("expected practitioner id propagated, got %s / %v", id, ok)
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := requirePractitioner(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(practitionerHeader, "prac-abc")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected downstream status, got %d", rr.Code)
	}
}

func TestRequirePractitionerMissingHeader(t *testing.T) {
	handler := requirePractitioner(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing practitioner, got %d", rr.Code)
	}
}
