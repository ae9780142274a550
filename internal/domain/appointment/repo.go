package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]*Appointment, error)
}
