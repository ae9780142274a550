package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const table = "document_summaries"

type RepoREST struct {
	gw *backend.Gateway
}

func NewRepoREST(gw *backend.Gateway) *RepoREST {
	return &RepoREST{gw: gw}
}

type summaryInsert struct {
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	FileURL     string    `json:"file_url"`
	FileKind    string    `json:"file_kind"`
	SummaryText string    `json:"summary_text"`
}

func (r *RepoREST) Create(ctx context.Context, s *Summary) error {
	const op = "document.create"
	return r.gw.Do(ctx, op, func(ctx context.Context) error {
		var out Summary
		err := r.gw.Client().Insert(ctx, auth.TokenFromContext(ctx), table, summaryInsert{
			DoctorID:    s.DoctorID,
			PatientID:   s.PatientID,
			FileURL:     s.FileURL,
			FileKind:    s.FileKind,
			SummaryText: s.SummaryText,
		}, &out)
		if err != nil {
			return err
		}
		if out.ID == uuid.Nil {
			return errs.E(errs.KindTransient, op, "no data returned")
		}
		*s = out
		return nil
	})
}

func (r *RepoREST) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Summary, error) {
	const op = "document.list_by_patient"
	var out []*Summary
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		out = nil
		return r.gw.Client().Select(ctx, auth.TokenFromContext(ctx), table, backend.Query{
			Filters: []backend.Filter{
				{Column: "patient_id", Op: "eq", Value: patientID.String()},
			},
			Order: "created_at.desc",
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
