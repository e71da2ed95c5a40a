package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestAddServiceIsIdempotent(t *testing.T) {
	var d Draft
	svc := ServiceSelection{ID: "svc-1", Name: "Consulta", Price: "100.50", DurationMinutes: intPtr(30)}

	d.AddService(svc)
	d.AddService(svc)

	assert.Len(t, d.Services, 1)
	assert.Equal(t, "svc-1", d.Services[0].ID)
}

func TestAddServiceDuplicateIDIsNotAnUpdate(t *testing.T) {
	var d Draft
	d.AddService(ServiceSelection{ID: "svc-1", Name: "Consulta", Price: "100.50"})
	d.AddService(ServiceSelection{ID: "svc-1", Name: "Retorno", Price: "999.99"})

	assert.Len(t, d.Services, 1)
	assert.Equal(t, "Consulta", d.Services[0].Name, "first selection wins; re-add must not overwrite")
	assert.Equal(t, "100.50", d.Services[0].Price)
}

func TestRemoveService(t *testing.T) {
	var d Draft
	d.AddService(ServiceSelection{ID: "svc-1"})
	d.AddService(ServiceSelection{ID: "svc-2"})
	d.AddService(ServiceSelection{ID: "svc-3"})

	d.RemoveService("svc-2")

	assert.Len(t, d.Services, 2)
	assert.Equal(t, "svc-1", d.Services[0].ID)
	assert.Equal(t, "svc-3", d.Services[1].ID)
	assert.False(t, d.HasService("svc-2"))

	// Removing an absent id is a no-op.
	d.RemoveService("svc-9")
	assert.Len(t, d.Services, 2)
}

func TestSetPatientDoesNotTouchLaterSteps(t *testing.T) {
	var d Draft
	d.AddService(ServiceSelection{ID: "svc-1"})
	d.SetSchedule("2026-09-02", "14:30", "loc-1")
	d.SetDetails("desc", "note", "cat-1", "type-1", "appt-1")

	d.SetPatient("12345678900", "Ana Silva", "+5511999990000")

	assert.Equal(t, "Ana Silva", d.Patient.Name)
	assert.Len(t, d.Services, 1)
	assert.Equal(t, "2026-09-02", d.Date)
	assert.Equal(t, "cat-1", d.ServiceCategoryID)
}

func TestResetReturnsToEmpty(t *testing.T) {
	var d Draft
	d.SetPatient("12345678900", "Ana Silva", "")
	d.SetPractitioner("prac-1")
	d.AddService(ServiceSelection{ID: "svc-1", Price: "50"})
	d.SetSchedule("2026-09-02", "14:30", "loc-1")
	d.SetDetails("d", "n", "c", "t", "a")

	d.Reset()

	assert.Equal(t, Draft{}, d)
}

func TestCloneDoesNotShareServicesStorage(t *testing.T) {
	var d Draft
	d.AddService(ServiceSelection{ID: "svc-1", Price: "50"})
	d.AddService(ServiceSelection{ID: "svc-2", Price: "80"})

	clone := d.Clone()
	d.RemoveService("svc-1")

	require.Len(t, clone.Services, 2)
	assert.Equal(t, "svc-1", clone.Services[0].ID)
	assert.Equal(t, "svc-2", clone.Services[1].ID)
	assert.Len(t, d.Services, 1)
}

func TestCloneOfEmptyDraftIsEmpty(t *testing.T) {
	var d Draft
	assert.Equal(t, Draft{}, d.Clone())
}
