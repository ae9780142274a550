package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const table = "medical_reports"

type RepoREST struct {
	gw *backend.Gateway
}

func NewRepoREST(gw *backend.Gateway) *RepoREST {
	return &RepoREST{gw: gw}
}

type reportInsert struct {
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	VisitReason string    `json:"visit_reason"`
	ImageURL    string    `json:"image_url"`
	Symptoms    string    `json:"symptoms"`
	Analysis    string    `json:"analysis"`
}

func (r *RepoREST) Create(ctx context.Context, rep *Report) error {
	const op = "report.create"
	return r.gw.Do(ctx, op, func(ctx context.Context) error {
		var out Report
		err := r.gw.Client().Insert(ctx, auth.TokenFromContext(ctx), table, reportInsert{
			DoctorID:    rep.DoctorID,
			PatientID:   rep.PatientID,
			VisitReason: rep.VisitReason,
			ImageURL:    rep.ImageURL,
			Symptoms:    rep.Symptoms,
			Analysis:    rep.Analysis,
		}, &out)
		if err != nil {
			return err
		}
		if out.ID == uuid.Nil {
			return errs.E(errs.KindTransient, op, "no data returned")
		}
		*rep = out
		return nil
	})
}

func (r *RepoREST) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	const op = "report.get"
	var out Report
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

func (r *RepoREST) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	const op = "report.list"
	var out []*Report
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		out = nil
		return r.gw.Client().Select(ctx, auth.TokenFromContext(ctx), table, backend.Query{
			Filters: []backend.Filter{{Column: "patient_id", Op: "eq", Value: patientID.String()}},
			Order:   "created_at.desc",
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RepoREST) SetHealthStatus(ctx context.Context, id uuid.UUID, status string) (*Report, error) {
	const op = "report.set_health_status"
	var out Report
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		return r.gw.Client().Update(ctx, auth.TokenFromContext(ctx), table,
			[]backend.Filter{{Column: "id", Op: "eq", Value: id.String()}},
			map[string]string{"health_status": status}, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
