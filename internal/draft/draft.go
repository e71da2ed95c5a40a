// Package draft holds the appointment-in-progress entity accumulated across
// the booking wizard. One Draft belongs to one wizard session; it only grows
// as the user walks forward through the steps, and is cleared only by an
// explicit Reset after a successful submission or a cancellation.
package draft

// ServiceSelection is one service picked on the services step. Price is kept
// as the raw catalog string; the upstream catalog types it as text and the
// totals are parsed on demand.
type ServiceSelection struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// Patient identifies the person being booked. CPF is the national patient
// identifier used across the product.
type Patient struct {
	CPF   string `json:"cpf"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Draft accumulates the booking choices of one wizard session. Fields set by
// an earlier step are never cleared by a later step.
type Draft struct {
	Patient        Patient            `json:"patient"`
	PractitionerID string             `json:"practitioner_id"`
	Services       []ServiceSelection `json:"services"`

	// Schedule step fields.
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	LocationID string `json:"location_id"`

	// Details step fields.
	Description       string `json:"description"`
	Note              string `json:"note"`
	ServiceCategoryID string `json:"service_category_id"`
	ServiceTypeID     string `json:"service_type_id"`
	AppointmentTypeID string `json:"appointment_type_id"`
}

// SetPatient overwrites the patient subfields. Later-step fields are left
// untouched so re-picking a patient does not lose selected services.
func (d *Draft) SetPatient(cpf, name, phone string) {
	d.Patient = Patient{CPF: cpf, Name: name, Phone: phone}
}

// SetPractitioner overwrites the practitioner id.
func (d *Draft) SetPractitioner(id string) {
	d.PractitionerID = id
}

// AddService appends a service unless one with the same id is already
// selected. Re-adding an existing id is a normal call pattern from the
// client and is a silent no-op, never a duplicate or an update.
func (d *Draft) AddService(s ServiceSelection) {
	for _, existing := range d.Services {
		if existing.ID == s.ID {
			return
		}
	}
	d.Services = append(d.Services, s)
}

// RemoveService drops the selection with the given id. Absent ids are a no-op.
func (d *Draft) RemoveService(id string) {
	for i, existing := range d.Services {
		if existing.ID == id {
			d.Services = append(d.Services[:i], d.Services[i+1:]...)
			return
		}
	}
}

// HasService reports whether a service id is currently selected.
func (d *Draft) HasService(id string) bool {
	for _, existing := range d.Services {
		if existing.ID == id {
			return true
		}
	}
	return false
}

// SetSchedule overwrites the date/time/location step fields.
func (d *Draft) SetSchedule(date, timeSlot, locationID string) {
	d.Date = date
	d.TimeSlot = timeSlot
	d.LocationID = locationID
}

// SetDetails overwrites the final-step fields. Empty description and note are
// legal and submitted as-is; no placeholder text is substituted.
func (d *Draft) SetDetails(description, note, serviceCategoryID, serviceTypeID, appointmentTypeID string) {
	d.Description = description
	d.Note = note
	d.ServiceCategoryID = serviceCategoryID
	d.ServiceTypeID = serviceTypeID
	d.AppointmentTypeID = appointmentTypeID
}

// Clone returns a copy whose Services slice does not share backing storage
// with the receiver, so later removals cannot reach into the copy.
func (d *Draft) Clone() Draft {
	out := *d
	out.Services = append([]ServiceSelection(nil), d.Services...)
	return out
}

// Reset returns the draft to its empty initial value.
func (d *Draft) Reset() {
	*d = Draft{}
}
