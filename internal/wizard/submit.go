package wizard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agendadoc/booking-platform/internal/appointments"
	"github.com/agendadoc/booking-platform/internal/draft"
	"github.com/agendadoc/booking-platform/internal/observability/metrics"
	"github.com/agendadoc/booking-platform/pkg/logging"
)

var wizardTracer = otel.Tracer("agendadoc.internal.wizard")

// AppointmentCreator is the external creation API collaborator.
type AppointmentCreator interface {
	Create(ctx context.Context, req appointments.CreateRequest) (string, error)
}

// Service drives wizard sessions through submission.
type Service struct {
	manager *Manager
	creator AppointmentCreator
	metrics *metrics.WizardMetrics
	logger  *logging.Logger
}

// NewService constructs the wizard service.
func NewService(manager *Manager, creator AppointmentCreator, m *metrics.WizardMetrics, logger *logging.Logger) *Service {
	if manager == nil {
		panic("wizard: manager required")
	}
	if creator == nil {
		panic("wizard: appointment creator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{manager: manager, creator: creator, metrics: m, logger: logger}
}

// Manager exposes the underlying session manager.
func (s *Service) Manager() *Manager { return s.manager }

// NormalizeSubmission assembles the creation payload from an accumulated
// draft. Free-text fields are passed through exactly as entered.
func NormalizeSubmission(d *draft.Draft) appointments.CreateRequest {
	serviceIDs := make([]string, 0, len(d.Services))
	for _, svc := range d.Services {
		serviceIDs = append(serviceIDs, svc.ID)
	}
	return appointments.CreateRequest{
		PatientCPF:        d.Patient.CPF,
		PatientName:       d.Patient.Name,
		PractitionerID:    d.PractitionerID,
		ServiceIDs:        serviceIDs,
		Description:       d.Description,
		Note:              d.Note,
		ServiceCategoryID: d.ServiceCategoryID,
		ServiceTypeID:     d.ServiceTypeID,
		AppointmentTypeID: d.AppointmentTypeID,
		Date:              d.Date,
		TimeSlot:          d.TimeSlot,
		LocationID:        d.LocationID,
	}
}

// Submit normalizes the session's draft and invokes the creation API. On
// success the draft is reset and the session completed; on failure every
// draft field is left untouched and the session returns to the final step so
// the user can retry.
func (s *Service) Submit(ctx context.Context, sessionID string) (string, error) {
	ctx, span := wizardTracer.Start(ctx, "wizard.submit")
	defer span.End()
	span.SetAttributes(attribute.String("agendadoc.session_id", sessionID))

	session, err := s.manager.Get(sessionID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	snapshot, err := session.beginSubmit()
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	start := time.Now()
	createdID, err := s.creator.Create(ctx, NormalizeSubmission(&snapshot))
	if err != nil {
		session.finishSubmit(false)
		s.metrics.ObserveSubmission("failure", time.Since(start).Seconds())
		span.RecordError(err)
		s.logger.Error("appointment submission failed",
			"session_id", sessionID,
			"error", err,
		)
		return "", fmt.Errorf("wizard: submit: %w", err)
	}

	session.finishSubmit(true)
	s.metrics.ObserveSubmission("success", time.Since(start).Seconds())
	s.logger.Info("appointment created",
		"session_id", sessionID,
		"appointment_id", createdID,
		"practitioner_id", session.PractitionerID,
	)
	return createdID, nil
}

// StepLabel renders a step number for metric labels.
func StepLabel(step Step) string {
	return strconv.Itoa(int(step))
}
