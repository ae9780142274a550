package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/domain/report"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type mockRepo struct {
	appointments []*Appointment
	creates      int
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	m.creates++
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.appointments = append(m.appointments, a)
	return nil
}

func (m *mockRepo) ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && !a.ScheduledFor.Before(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestCreate_RejectsPastBeforeRepoCall(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	svc.now = fixedNow
	ctx := context.Background()
	doctorID := uuid.New()

	tests := []struct {
		name string
		when time.Time
	}{
		{"past", fixedNow().Add(-time.Hour)},
		{"exactly now", fixedNow()},
		{"zero time", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, doctorID, CreateInput{
				PatientID:    uuid.New(),
				ScheduledFor: tt.when,
				VisitReason:  report.ReasonRegularCheckup,
			})
			if !errs.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if repo.creates != 0 {
		t.Errorf("repo must not be called for invalid input, got %d creates", repo.creates)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&mockRepo{})
	svc.now = fixedNow
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), CreateInput{
		ScheduledFor: fixedNow().Add(2 * time.Hour),
		VisitReason:  report.ReasonRegularCheckup,
	})
	if !errs.IsValidation(err) {
		t.Errorf("missing patient: expected validation error, got %v", err)
	}

	_, err = svc.Create(ctx, uuid.New(), CreateInput{
		PatientID:    uuid.New(),
		ScheduledFor: fixedNow().Add(2 * time.Hour),
		VisitReason:  "house_call",
	})
	if !errs.IsValidation(err) {
		t.Errorf("unknown reason: expected validation error, got %v", err)
	}
}

func TestCreate_FutureBooking(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	svc.now = fixedNow

	a, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		PatientID:    uuid.New(),
		ScheduledFor: fixedNow().Add(2 * time.Hour),
		VisitReason:  report.ReasonRegularCheckup,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected assigned id")
	}
}

func TestListUpcoming_ExcludesPassed(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	svc.now = fixedNow
	doctorID := uuid.New()

	booked, err := svc.Create(context.Background(), doctorID, CreateInput{
		PatientID:    uuid.New(),
		ScheduledFor: fixedNow().Add(2 * time.Hour),
		VisitReason:  report.ReasonRegularCheckup,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListUpcoming(context.Background(), doctorID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != booked.ID {
		t.Fatalf("expected the booked appointment, got %d", len(got))
	}

	// Once "now" passes the slot, the appointment leaves the listing.
	svc.now = func() time.Time { return fixedNow().Add(3 * time.Hour) }
	got, err = svc.ListUpcoming(context.Background(), doctorID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty listing after the slot passed, got %d", len(got))
	}
}
