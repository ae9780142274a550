package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const table = "patients"

type RepoREST struct {
	gw *backend.Gateway
}

func NewRepoREST(gw *backend.Gateway) *RepoREST {
	return &RepoREST{gw: gw}
}

type patientInsert struct {
	UserID         uuid.UUID `json:"user_id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	FullName       string    `json:"full_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
}

func (r *RepoREST) Create(ctx context.Context, p *Patient) error {
	const op = "patient.create"
	return r.gw.Do(ctx, op, func(ctx context.Context) error {
		var out Patient
		err := r.gw.Client().Insert(ctx, auth.TokenFromContext(ctx), table, patientInsert{
			UserID:         p.UserID,
			DoctorID:       p.DoctorID,
			FullName:       p.FullName,
			DateOfBirth:    p.DateOfBirth,
			MedicalHistory: p.MedicalHistory,
		}, &out)
		if err != nil {
			return err
		}
		if out.ID == uuid.Nil {
			return errs.E(errs.KindTransient, op, "no data returned")
		}
		*p = out
		return nil
	})
}

func (r *RepoREST) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	const op = "patient.get"
	var out Patient
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

func (r *RepoREST) ListByDoctor(ctx context.Context, doctorID uuid.UUID, order string) ([]*Patient, error) {
	const op = "patient.list"
	var out []*Patient
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		out = nil
		return r.gw.Client().Select(ctx, auth.TokenFromContext(ctx), table, backend.Query{
			Filters: []backend.Filter{{Column: "doctor_id", Op: "eq", Value: doctorID.String()}},
			Order:   order,
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
