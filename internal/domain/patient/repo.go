package patient

import (
	"context"

	"github.com/google/uuid"
)

// Sort orders for doctor-scoped listings.
const (
	OrderByName   = "full_name.asc"
	OrderByNewest = "created_at.desc"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, order string) ([]*Patient, error)
}
