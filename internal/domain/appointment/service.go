package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/domain/report"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateInput carries the booking request.
type CreateInput struct {
	PatientID    uuid.UUID `json:"patient_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	VisitReason  string    `json:"visit_reason"`
	Notes        *string   `json:"notes"`
}

// Create books an appointment. All validation happens before any network
// call: a past or present timestamp never reaches the backend.
func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, in CreateInput) (*Appointment, error) {
	const op = "appointment.create"
	if doctorID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "doctor id is required")
	}
	if in.PatientID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "patient id is required")
	}
	if !report.ValidVisitReason(in.VisitReason) {
		return nil, errs.Errorf(errs.KindValidation, op, "unknown visit reason %q", in.VisitReason)
	}
	if in.ScheduledFor.IsZero() {
		return nil, errs.E(errs.KindValidation, op, "scheduled time is required")
	}
	if !in.ScheduledFor.After(s.now()) {
		return nil, errs.E(errs.KindValidation, op, "appointment must be scheduled in the future")
	}

	a := &Appointment{
		DoctorID:     doctorID,
		PatientID:    in.PatientID,
		ScheduledFor: in.ScheduledFor,
		VisitReason:  in.VisitReason,
		Notes:        in.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListUpcoming returns the doctor's appointments from now on, soonest
// first. An appointment drops out of the listing the moment its time
// passes.
func (s *Service) ListUpcoming(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	return s.repo.ListUpcoming(ctx, doctorID, s.now())
}
