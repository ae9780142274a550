package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const table = "appointments"

type RepoREST struct {
	gw *backend.Gateway
}

func NewRepoREST(gw *backend.Gateway) *RepoREST {
	return &RepoREST{gw: gw}
}

type appointmentInsert struct {
	DoctorID     uuid.UUID `json:"doctor_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	VisitReason  string    `json:"visit_reason"`
	Notes        *string   `json:"notes,omitempty"`
}

func (r *RepoREST) Create(ctx context.Context, a *Appointment) error {
	const op = "appointment.create"
	return r.gw.Do(ctx, op, func(ctx context.Context) error {
		var out Appointment
		err := r.gw.Client().Insert(ctx, auth.TokenFromContext(ctx), table, appointmentInsert{
			DoctorID:     a.DoctorID,
			PatientID:    a.PatientID,
			ScheduledFor: a.ScheduledFor,
			VisitReason:  a.VisitReason,
			Notes:        a.Notes,
		}, &out)
		if err != nil {
			return err
		}
		if out.ID == uuid.Nil {
			return errs.E(errs.KindTransient, op, "no data returned")
		}
		*a = out
		return nil
	})
}

func (r *RepoREST) ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]*Appointment, error) {
	const op = "appointment.list_upcoming"
	var out []*Appointment
	err := r.gw.Do(ctx, op, func(ctx context.Context) error {
		out = nil
		return r.gw.Client().Select(ctx, auth.TokenFromContext(ctx), table, backend.Query{
			Filters: []backend.Filter{
				{Column: "doctor_id", Op: "eq", Value: doctorID.String()},
				{Column: "scheduled_for", Op: "gte", Value: from.UTC().Format(time.RFC3339)},
			},
			Order: "scheduled_for.asc",
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
