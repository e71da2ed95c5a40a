package router

import (
	"net/http"
	"strings"

	"github.com/agendadoc/booking-platform/internal/practitioner"
)

const practitionerHeader = "X-Practitioner-Id"

// requirePractitioner enforces the signed-in practitioner header on wizard
// requests and propagates the id through the request context.
func requirePractitioner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(practitionerHeader))
		if id == "" {
			http.Error(w, "missing X-Practitioner-Id", http.StatusBadRequest)
			return
		}
		ctx := practitioner.WithID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
