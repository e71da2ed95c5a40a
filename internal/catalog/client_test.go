package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferingsParsesStringPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/offerings", r.URL.Path)
		require.Equal(t, "consultation", r.URL.Query().Get("kind"))
		require.Equal(t, "true", r.URL.Query().Get("active"))
		w.Write([]byte(`[
			{"id":"svc-1","name":"Consulta","price":"100.50","duration_minutes":30,"active":true},
			{"id":"svc-2","name":"Retorno","price":"0","duration_minutes":null,"active":true}
		]`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	offerings, err := client.Offerings(context.Background(), "consultation", true)
	require.NoError(t, err)
	require.Len(t, offerings, 2)
	assert.Equal(t, "100.50", offerings[0].Price, "price must stay the raw upstream string")
	require.NotNil(t, offerings[0].DurationMinutes)
	assert.Equal(t, 30, *offerings[0].DurationMinutes)
	assert.Nil(t, offerings[1].DurationMinutes)
}

func TestOfferingsMalformedPayloadIsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not an array"}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	offerings, err := client.Offerings(context.Background(), "", false)
	require.NoError(t, err, "a malformed payload degrades to empty, it does not propagate")
	assert.Empty(t, offerings)
}

func TestOfferingsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Offerings(context.Background(), "", false)
	assert.Error(t, err)
}
