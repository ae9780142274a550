package patient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateInput carries the caller-supplied fields for a new client record.
type CreateInput struct {
	FullName       string  `json:"full_name"`
	DateOfBirth    string  `json:"date_of_birth"`
	MedicalHistory *string `json:"medical_history"`
}

// Create registers a patient under the given doctor. The date of birth
// must be a calendar date that is not in the future.
func (s *Service) Create(ctx context.Context, userID, doctorID uuid.UUID, in CreateInput) (*Patient, error) {
	const op = "patient.create"
	if doctorID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "doctor id is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, errs.E(errs.KindValidation, op, "full name is required")
	}
	dob, err := time.Parse(DOBLayout, in.DateOfBirth)
	if err != nil {
		return nil, errs.E(errs.KindValidation, op, "date of birth must be YYYY-MM-DD")
	}
	if dob.After(s.now()) {
		return nil, errs.E(errs.KindValidation, op, "date of birth cannot be in the future")
	}

	p := &Patient{
		UserID:         userID,
		DoctorID:       doctorID,
		FullName:       strings.TrimSpace(in.FullName),
		DateOfBirth:    in.DateOfBirth,
		MedicalHistory: in.MedicalHistory,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByDoctor returns the doctor's patients, newest first for the
// dashboard or alphabetical for pickers.
func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, order string) ([]*Patient, error) {
	if order != OrderByName {
		order = OrderByNewest
	}
	return s.repo.ListByDoctor(ctx, doctorID, order)
}

// FilterByName narrows a listing to patients whose name contains the query,
// case-insensitively. Empty query keeps everyone.
func FilterByName(patients []*Patient, query string) []*Patient {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return patients
	}
	out := make([]*Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FullName), query) {
			out = append(out, p)
		}
	}
	return out
}
