package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalsOnEmptyDraft(t *testing.T) {
	var d Draft
	assert.Equal(t, 0.0, d.TotalServicesValue())
	assert.Equal(t, 0, d.TotalDuration())
}

func TestTotalServicesValueParsesDefensively(t *testing.T) {
	tests := []struct {
		name   string
		prices []string
		want   float64
	}{
		{"plain values", []string{"100.50", "49.50"}, 150.0},
		{"non-numeric contributes zero", []string{"100.50", "bad"}, 100.50},
		{"empty string contributes zero", []string{""}, 0},
		{"whitespace around number", []string{" 80.25 "}, 80.25},
		{"infinity-like text contributes zero", []string{"Inf", "NaN", "10"}, 0 + 0 + 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Draft
			for i, p := range tt.prices {
				d.AddService(ServiceSelection{ID: string(rune('a' + i)), Price: p})
			}
			assert.InDelta(t, tt.want, d.TotalServicesValue(), 1e-9)
		})
	}
}

func TestTotalDurationTreatsNilAsZero(t *testing.T) {
	var d Draft
	d.AddService(ServiceSelection{ID: "svc-1", DurationMinutes: intPtr(30)})
	d.AddService(ServiceSelection{ID: "svc-2", DurationMinutes: nil})
	d.AddService(ServiceSelection{ID: "svc-3", DurationMinutes: intPtr(15)})

	assert.Equal(t, 45, d.TotalDuration())
}

func TestAggregationScenario(t *testing.T) {
	// Add A (100.50, 30min), add A again (no-op), add B (bad price, nil duration).
	var d Draft
	a := ServiceSelection{ID: "a", Price: "100.50", DurationMinutes: intPtr(30)}
	b := ServiceSelection{ID: "b", Price: "bad", DurationMinutes: nil}

	d.AddService(a)
	d.AddService(a)
	d.AddService(b)

	assert.Len(t, d.Services, 2)
	assert.InDelta(t, 100.50, d.TotalServicesValue(), 1e-9)
	assert.Equal(t, 30, d.TotalDuration())
}

func TestTotalsRecomputeAfterRemove(t *testing.T) {
	var d Draft
	d.AddService(ServiceSelection{ID: "a", Price: "100", DurationMinutes: intPtr(30)})
	d.AddService(ServiceSelection{ID: "b", Price: "50", DurationMinutes: intPtr(15)})

	d.RemoveService("a")

	assert.InDelta(t, 50, d.TotalServicesValue(), 1e-9)
	assert.Equal(t, 15, d.TotalDuration())
}
