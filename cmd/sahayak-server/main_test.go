package main

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/divyaanshikaushik/Sahayak/internal/domain/appointment"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/doctor"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/patient"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/report"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
	"github.com/divyaanshikaushik/Sahayak/internal/session"
)

// In-memory repositories for exercising the full practice flow without
// the hosted backend.

type memDoctors struct {
	byID   map[uuid.UUID]*doctor.Doctor
	byUser map[uuid.UUID]*doctor.Doctor
}

func newMemDoctors() *memDoctors {
	return &memDoctors{byID: map[uuid.UUID]*doctor.Doctor{}, byUser: map[uuid.UUID]*doctor.Doctor{}}
}

func (m *memDoctors) Create(ctx context.Context, d *doctor.Doctor) error {
	if _, ok := m.byUser[d.UserID]; ok {
		return errs.E(errs.KindConflict, "doctor.create", "profile exists")
	}
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	m.byID[d.ID] = d
	m.byUser[d.UserID] = d
	return nil
}

func (m *memDoctors) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if d, ok := m.byID[id]; ok {
		return d, nil
	}
	return nil, errs.E(errs.KindNotFound, "doctor.get", "no profile")
}

func (m *memDoctors) GetByUserID(ctx context.Context, userID uuid.UUID) (*doctor.Doctor, error) {
	if d, ok := m.byUser[userID]; ok {
		return d, nil
	}
	return nil, errs.E(errs.KindNotFound, "doctor.get_by_user", "no profile")
}

type memPatients struct {
	items []*patient.Patient
}

func (m *memPatients) Create(ctx context.Context, p *patient.Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().Add(time.Duration(len(m.items)) * time.Second)
	m.items = append(m.items, p)
	return nil
}

func (m *memPatients) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errs.E(errs.KindNotFound, "patient.get", "no record")
}

func (m *memPatients) ListByDoctor(ctx context.Context, doctorID uuid.UUID, order string) ([]*patient.Patient, error) {
	var out []*patient.Patient
	for _, p := range m.items {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	if order == patient.OrderByNewest {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

type memAppointments struct {
	items []*appointment.Appointment
}

func (m *memAppointments) Create(ctx context.Context, a *appointment.Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.items = append(m.items, a)
	return nil
}

func (m *memAppointments) ListUpcoming(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range m.items {
		if a.DoctorID == doctorID && !a.ScheduledFor.Before(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

type memAuth struct{ userID uuid.UUID }

func (m *memAuth) SignUp(ctx context.Context, email, password string) (*backend.Session, error) {
	return &backend.Session{
		AccessToken: "test-token",
		User:        backend.User{ID: m.userID.String(), Email: email},
	}, nil
}

func (m *memAuth) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	return m.SignUp(ctx, email, password)
}

func (m *memAuth) SignOut(ctx context.Context, token string) error { return nil }

// TestPracticeFlow walks the core practice scenario: register, start with
// an empty roster, admit a patient, book a future appointment and watch
// it leave the upcoming listing once its time passes.
func TestPracticeFlow(t *testing.T) {
	ctx := context.Background()

	doctorSvc := doctor.NewService(newMemDoctors())
	patientSvc := patient.NewService(&memPatients{})
	apptRepo := &memAppointments{}
	apptSvc := appointment.NewService(apptRepo)

	mgr := session.NewManager(&memAuth{userID: uuid.New()}, doctorSvc, zerolog.Nop())
	mgr.Ready()

	sess, err := mgr.SignUp(ctx, "asha@example.com", "Str0ng!pass", session.Profile{
		FullName: "Dr. Asha Rao", Specialty: "General Medicine", LicenseNumber: "KA-4821",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.AccessToken == "" {
		t.Fatal("expected an issued access token")
	}
	snap := mgr.Current()
	if snap.State != "active" || snap.Doctor == nil {
		t.Fatalf("expected an active session with a profile, got %+v", snap)
	}
	doctorID := snap.Doctor.ID

	// Fresh practice: no patients yet.
	roster, err := patientSvc.ListByDoctor(ctx, doctorID, patient.OrderByNewest)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(roster) != 0 {
		t.Fatalf("expected an empty roster, got %d", len(roster))
	}

	// Admit two patients; the dashboard lists newest first.
	userID := snap.Doctor.UserID
	if _, err := patientSvc.Create(ctx, userID, doctorID, patient.CreateInput{
		FullName: "Jane Doe", DateOfBirth: "1990-01-01",
	}); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	second, err := patientSvc.Create(ctx, userID, doctorID, patient.CreateInput{
		FullName: "Rahul Mehta", DateOfBirth: "1984-07-19",
	})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	roster, err = patientSvc.ListByDoctor(ctx, doctorID, patient.OrderByNewest)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(roster) != 2 || roster[0].ID != second.ID {
		t.Fatalf("expected newest-first roster of 2, got %d entries", len(roster))
	}

	// Book a checkup two hours out.
	booked, err := apptSvc.Create(ctx, doctorID, appointment.CreateInput{
		PatientID:    second.ID,
		ScheduledFor: time.Now().Add(2 * time.Hour),
		VisitReason:  report.ReasonRegularCheckup,
	})
	if err != nil {
		t.Fatalf("book appointment: %v", err)
	}

	upcoming, err := apptSvc.ListUpcoming(ctx, doctorID)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != booked.ID {
		t.Fatalf("expected the booked appointment in the upcoming listing, got %d", len(upcoming))
	}

	// Once the slot passes it drops out of the listing.
	later, err := apptRepo.ListUpcoming(ctx, doctorID, booked.ScheduledFor.Add(time.Minute))
	if err != nil {
		t.Fatalf("list after slot: %v", err)
	}
	if len(later) != 0 {
		t.Fatalf("expected the passed appointment excluded, got %d", len(later))
	}
}
