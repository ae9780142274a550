package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const table = "doctors"

// RepoREST stores doctors in the hosted backend through the gateway.
type RepoREST struct {
	gw *backend.Gateway
}

func NewRepoREST(gw *backend.Gateway) *RepoREST {
	return &RepoREST{gw: gw}
}

type doctorInsert struct {
	UserID        uuid.UUID `json:"user_id"`
	FullName      string    `json:"full_name"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"license_number"`
}

func (r *RepoREST) Create(ctx context.Context, d *Doctor) error {
	const op = "doctor.create"
	return r.gw.Do(ctx, op, func(ctx context.Context) error {
		var out Doctor
		err := r.gw.Client().Insert(ctx, auth.TokenFromContext(ctx), table, doctorInsert{
			UserID:        d.UserID,
			FullName:      d.FullName,
			Specialty:     d.Specialty,
			LicenseNumber: d.LicenseNumber,
		}, &out)
		if err != nil {
			return err
		}
		if out.ID == uuid.Nil {
			return errs.E(errs.KindTransient, op, "no data returned")
		}
		*d = out
		return nil
	})
}

func (r *RepoREST) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	const op = "doctor.get"
	var out Doctor
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		return r.gw.Client().SelectOne(ctx, auth.TokenFromContext(ctx), table, backend.Query{
			Filters: []backend.Filter{{Column: "id", Op: "eq", Value: id.String()}},
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RepoREST) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	const op = "doctor.get_by_user"
	var out Doctor
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		return r.gw.Client().SelectOne(ctx, auth.TokenFromContext(ctx), table, backend.Query{
			Filters: []backend.Filter{{Column: "user_id", Op: "eq", Value: userID.String()}},
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
