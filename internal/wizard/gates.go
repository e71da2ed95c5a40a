package wizard

import "github.com/agendadoc/booking-platform/internal/draft"

// CanProceed reports whether the draft satisfies the gate for the given step.
// Gates are pure over the current draft: no side effects, safe to evaluate on
// every navigation-intent check. Unknown steps never pass.
func CanProceed(d *draft.Draft, step Step) bool {
	switch step {
	case StepPatient:
		return d.Patient.CPF != ""
	case StepServices:
		return len(d.Services) >= 1
	case StepDate:
		return d.Date != ""
	case StepTime:
		return d.TimeSlot != ""
	case StepLocation:
		return d.LocationID != ""
	case StepDetails:
		return d.ServiceCategoryID != "" && d.ServiceTypeID != "" && d.AppointmentTypeID != ""
	default:
		return false
	}
}
