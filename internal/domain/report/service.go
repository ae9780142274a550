package report

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new visit record. The analysis text
// comes from the AI adapter or from the doctor's own write-up.
type CreateInput struct {
	PatientID   uuid.UUID `json:"patient_id"`
	VisitReason string    `json:"visit_reason"`
	ImageURL    string    `json:"image_url"`
	Symptoms    string    `json:"symptoms"`
	Analysis    string    `json:"analysis"`
}

func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, in CreateInput) (*Report, error) {
	const op = "report.create"
	if doctorID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "doctor id is required")
	}
	if in.PatientID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "patient id is required")
	}
	if !ValidVisitReason(in.VisitReason) {
		return nil, errs.Errorf(errs.KindValidation, op, "unknown visit reason %q", in.VisitReason)
	}
	if strings.TrimSpace(in.Symptoms) == "" {
		return nil, errs.E(errs.KindValidation, op, "symptoms are required")
	}
	if strings.TrimSpace(in.Analysis) == "" {
		return nil, errs.E(errs.KindValidation, op, "analysis is required")
	}

	r := &Report{
		DoctorID:    doctorID,
		PatientID:   in.PatientID,
		VisitReason: in.VisitReason,
		ImageURL:    in.ImageURL,
		Symptoms:    in.Symptoms,
		Analysis:    in.Analysis,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByPatient returns the visit history newest-first, narrowed by the
// filter in-process.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, f Filter) ([]*Report, error) {
	reports, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return Apply(reports, f), nil
}

// SetHealthStatus records the health trend on a report. This is the only
// mutation a report supports; the trend can be changed but never cleared.
func (s *Service) SetHealthStatus(ctx context.Context, id uuid.UUID, status string) (*Report, error) {
	const op = "report.set_health_status"
	if !ValidHealthStatus(status) {
		return nil, errs.Errorf(errs.KindValidation, op, "health status must be %q or %q", StatusImproving, StatusDeteriorating)
	}
	return s.repo.SetHealthStatus(ctx, id, status)
}
