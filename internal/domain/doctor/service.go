package doctor

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

// Create registers a professional profile for a principal.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, fullName, specialty, license string) (*Doctor, error) {
	const op = "doctor.create"
	if userID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "user id is required")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, errs.E(errs.KindValidation, op, "full name is required")
	}
	if strings.TrimSpace(specialty) == "" {
		return nil, errs.E(errs.KindValidation, op, "specialty is required")
	}
	if strings.TrimSpace(license) == "" {
		return nil, errs.E(errs.KindValidation, op, "license number is required")
	}

	d := &Doctor{
		UserID:        userID,
		FullName:      strings.TrimSpace(fullName),
		Specialty:     strings.TrimSpace(specialty),
		LicenseNumber: strings.TrimSpace(license),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// DoctorIDForUser reports the profile id for a principal, or false when the
// principal has not completed registration. Satisfies the route guard's
// resolver interface.
func (s *Service) DoctorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errs.IsNotFound(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return d.ID, true, nil
}

// EnsureProfile resolves the profile for an OAuth principal, creating a
// placeholder one on first sign-in. A conflict during creation means a
// concurrent request won the race; the existing profile is fetched instead.
func (s *Service) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*Doctor, error) {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return d, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	d = &Doctor{
		UserID:        userID,
		FullName:      name,
		Specialty:     PlaceholderSpecialty,
		LicenseNumber: PlaceholderLicense,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if errs.IsConflict(err) {
			return s.repo.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	return d, nil
}
