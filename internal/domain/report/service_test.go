package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type mockRepo struct {
	reports []*Report
}

func (m *mockRepo) Create(ctx context.Context, r *Report) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	m.reports = append(m.reports, r)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	for _, r := range m.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errs.E(errs.KindNotFound, "report.get", "report not found")
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	var out []*Report
	for _, r := range m.reports {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepo) SetHealthStatus(ctx context.Context, id uuid.UUID, status string) (*Report, error) {
	r, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.HealthStatus = &status
	return r, nil
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&mockRepo{})
	ctx := context.Background()
	doctorID := uuid.New()
	patientID := uuid.New()

	valid := CreateInput{
		PatientID:   patientID,
		VisitReason: ReasonRegularCheckup,
		Symptoms:    "persistent cough",
		Analysis:    "likely viral",
	}

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing patient", func(in *CreateInput) { in.PatientID = uuid.Nil }},
		{"unknown reason", func(in *CreateInput) { in.VisitReason = "walk_in" }},
		{"empty symptoms", func(in *CreateInput) { in.Symptoms = "  " }},
		{"empty analysis", func(in *CreateInput) { in.Analysis = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if _, err := svc.Create(ctx, doctorID, in); !errs.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := svc.Create(ctx, doctorID, valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestSetHealthStatus(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.Create(ctx, uuid.New(), CreateInput{
		PatientID:   uuid.New(),
		VisitReason: ReasonEmergency,
		Symptoms:    "chest pain",
		Analysis:    "needs follow-up",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetHealthStatus(ctx, r.ID, "cured"); !errs.IsValidation(err) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}

	updated, err := svc.SetHealthStatus(ctx, r.ID, StatusImproving)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.HealthStatus == nil || *updated.HealthStatus != StatusImproving {
		t.Errorf("expected improving, got %v", updated.HealthStatus)
	}

	// The trend can move but never be cleared through the service.
	updated, err = svc.SetHealthStatus(ctx, r.ID, StatusDeteriorating)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.HealthStatus == nil || *updated.HealthStatus != StatusDeteriorating {
		t.Errorf("expected deteriorating, got %v", updated.HealthStatus)
	}
	if _, err := svc.SetHealthStatus(ctx, r.ID, ""); !errs.IsValidation(err) {
		t.Errorf("clearing the trend must be rejected, got %v", err)
	}
}

func TestListByPatient_AppliesFilter(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()
	doctorID := uuid.New()
	patientID := uuid.New()

	for _, reason := range []string{ReasonFirstMeet, ReasonEmergency, ReasonRegularCheckup} {
		if _, err := svc.Create(ctx, doctorID, CreateInput{
			PatientID:   patientID,
			VisitReason: reason,
			Symptoms:    "s",
			Analysis:    "a",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.ListByPatient(ctx, patientID, Filter{VisitReason: ReasonEmergency})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].VisitReason != ReasonEmergency {
		t.Errorf("expected 1 emergency report, got %d", len(got))
	}
}

func TestVisitReasonLabel(t *testing.T) {
	if got := VisitReasonLabel(ReasonFirstMeet); got != "First Meet" {
		t.Errorf("VisitReasonLabel = %q", got)
	}
	if got := VisitReasonLabel("unlisted"); got != "unlisted" {
		t.Errorf("unknown reason should pass through, got %q", got)
	}
}
