package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Summary) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Summary, error)
}
