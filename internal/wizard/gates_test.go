package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendadoc/booking-platform/internal/draft"
)

func TestCanProceedPatientStep(t *testing.T) {
	var d draft.Draft
	assert.False(t, CanProceed(&d, StepPatient), "empty cpf must block")

	d.SetPatient("", "Ana Silva", "")
	assert.False(t, CanProceed(&d, StepPatient), "name without cpf must block")

	d.SetPatient("12345678900", "Ana Silva", "")
	assert.True(t, CanProceed(&d, StepPatient))
}

func TestCanProceedServicesStep(t *testing.T) {
	var d draft.Draft
	assert.False(t, CanProceed(&d, StepServices))

	d.AddService(draft.ServiceSelection{ID: "svc-1"})
	assert.True(t, CanProceed(&d, StepServices))

	d.RemoveService("svc-1")
	assert.False(t, CanProceed(&d, StepServices))
}

func TestCanProceedScheduleSteps(t *testing.T) {
	var d draft.Draft
	assert.False(t, CanProceed(&d, StepDate))
	assert.False(t, CanProceed(&d, StepTime))
	assert.False(t, CanProceed(&d, StepLocation))

	d.SetSchedule("2026-09-02", "", "")
	assert.True(t, CanProceed(&d, StepDate))
	assert.False(t, CanProceed(&d, StepTime))

	d.SetSchedule("2026-09-02", "14:30", "loc-1")
	assert.True(t, CanProceed(&d, StepTime))
	assert.True(t, CanProceed(&d, StepLocation))
}

func TestCanProceedDetailsStep(t *testing.T) {
	tests := []struct {
		name               string
		category, svcType  string
		apptType           string
		want               bool
	}{
		{"all set", "cat-1", "type-1", "appt-1", true},
		{"missing category", "", "type-1", "appt-1", false},
		{"missing service type", "cat-1", "", "appt-1", false},
		{"missing appointment type", "cat-1", "type-1", "", false},
		{"all missing", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d draft.Draft
			d.SetDetails("", "", tt.category, tt.svcType, tt.apptType)
			assert.Equal(t, tt.want, CanProceed(&d, StepDetails))
		})
	}
}

func TestCanProceedUnknownStep(t *testing.T) {
	var d draft.Draft
	assert.False(t, CanProceed(&d, Step(0)))
	assert.False(t, CanProceed(&d, Step(7)))
}
