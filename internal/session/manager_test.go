package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/divyaanshikaushik/Sahayak/internal/domain/doctor"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type mockAuth struct {
	userID   string
	signUps  int
	signIns  int
	signOuts int
}

func (m *mockAuth) session() *backend.Session {
	return &backend.Session{
		AccessToken: "token-" + m.userID,
		User:        backend.User{ID: m.userID, Email: "doc@example.com"},
	}
}

func (m *mockAuth) SignUp(ctx context.Context, email, password string) (*backend.Session, error) {
	m.signUps++
	return m.session(), nil
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	m.signIns++
	return m.session(), nil
}

func (m *mockAuth) SignOut(ctx context.Context, token string) error {
	m.signOuts++
	return nil
}

type mockProfiles struct {
	byUser    map[uuid.UUID]*doctor.Doctor
	createErr error
}

func (m *mockProfiles) Create(ctx context.Context, userID uuid.UUID, fullName, specialty, license string) (*doctor.Doctor, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	d := &doctor.Doctor{ID: uuid.New(), UserID: userID, FullName: fullName, Specialty: specialty, LicenseNumber: license}
	if m.byUser == nil {
		m.byUser = map[uuid.UUID]*doctor.Doctor{}
	}
	m.byUser[userID] = d
	return d, nil
}

func (m *mockProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*doctor.Doctor, error) {
	if d, ok := m.byUser[userID]; ok {
		return d, nil
	}
	return nil, errs.E(errs.KindNotFound, "doctor.get_by_user", "no profile")
}

func newTestManager(authSvc *mockAuth, profiles *mockProfiles) *Manager {
	m := NewManager(authSvc, profiles, zerolog.Nop())
	m.Ready()
	return m
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"acceptable", "Str0ng!pass", false},
		{"too short", "S1!a", true},
		{"no uppercase", "weak1pass!", true},
		{"no lowercase", "WEAK1PASS!", true},
		{"no digit", "WeakPass!!", true},
		{"no special", "WeakPass11", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr && !errs.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSignUp_ActivatesSession(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	mgr := newTestManager(authSvc, &mockProfiles{})

	_, err := mgr.SignUp(context.Background(), "Doc@Example.com", "Str0ng!pass", Profile{
		FullName: "Dr. Asha Rao", Specialty: "Cardiology", LicenseNumber: "MH-1234",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := mgr.Current()
	if snap.State != "active" {
		t.Errorf("state = %q, want active", snap.State)
	}
	if snap.Doctor == nil || snap.Doctor.FullName != "Dr. Asha Rao" {
		t.Errorf("expected the created profile on the snapshot, got %+v", snap.Doctor)
	}
}

func TestSignUp_WeakPasswordNeverReachesAuth(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	mgr := newTestManager(authSvc, &mockProfiles{})

	_, err := mgr.SignUp(context.Background(), "doc@example.com", "short", Profile{FullName: "X"})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if authSvc.signUps != 0 {
		t.Errorf("auth service called %d times for a rejected password", authSvc.signUps)
	}
}

func TestSignUp_CompensatingSignOut(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	profiles := &mockProfiles{createErr: errs.E(errs.KindTransient, "doctor.create", "backend down")}
	mgr := newTestManager(authSvc, profiles)

	_, err := mgr.SignUp(context.Background(), "doc@example.com", "Str0ng!pass", Profile{FullName: "X", Specialty: "Y", LicenseNumber: "Z"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if authSvc.signOuts != 1 {
		t.Errorf("signOuts = %d, want 1 (compensation)", authSvc.signOuts)
	}
	if mgr.Current().State == "active" {
		t.Error("session must not activate after a failed registration")
	}
}

func TestSignUp_ConflictKeepsSession(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	profiles := &mockProfiles{createErr: errs.E(errs.KindConflict, "doctor.create", "already registered")}
	mgr := newTestManager(authSvc, profiles)

	_, err := mgr.SignUp(context.Background(), "doc@example.com", "Str0ng!pass", Profile{FullName: "X", Specialty: "Y", LicenseNumber: "Z"})
	if !errs.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if authSvc.signOuts != 0 {
		t.Errorf("signOuts = %d, want 0 on conflict", authSvc.signOuts)
	}
}

func TestSignIn_AuthenticatedBeforeProfileResolves(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	mgr := newTestManager(authSvc, &mockProfiles{})

	_, err := mgr.SignIn(context.Background(), "doc@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := mgr.Current()
	if snap.State != "authenticated" {
		t.Errorf("state = %q, want authenticated while the profile is unresolved", snap.State)
	}
	if snap.User == nil || snap.User.ID != authSvc.userID {
		t.Errorf("snapshot user = %+v", snap.User)
	}
}

func TestApplyProfile_DiscardsStaleResult(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	mgr := newTestManager(authSvc, &mockProfiles{})

	if _, err := mgr.SignIn(context.Background(), "doc@example.com", "Str0ng!pass"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	stale := &doctor.Doctor{ID: uuid.New(), FullName: "Previous Principal"}
	if mgr.applyProfile(uuid.New().String(), stale) {
		t.Error("a resolution for another principal must be discarded")
	}
	if mgr.Current().State != "authenticated" {
		t.Errorf("state changed after a discarded resolution: %q", mgr.Current().State)
	}

	current := &doctor.Doctor{ID: uuid.New(), FullName: "Dr. Asha Rao"}
	if !mgr.applyProfile(authSvc.userID, current) {
		t.Fatal("resolution for the signed-in principal must be kept")
	}
	if snap := mgr.Current(); snap.State != "active" || snap.Doctor != current {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSignOutAndExpiry_ClearSession(t *testing.T) {
	authSvc := &mockAuth{userID: uuid.New().String()}
	mgr := newTestManager(authSvc, &mockProfiles{})

	if _, err := mgr.SignIn(context.Background(), "doc@example.com", "Str0ng!pass"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := mgr.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if snap := mgr.Current(); snap.State != "anonymous" || snap.User != nil {
		t.Errorf("snapshot after sign-out = %+v", snap)
	}
	if authSvc.signOuts != 1 {
		t.Errorf("signOuts = %d, want 1", authSvc.signOuts)
	}

	if _, err := mgr.SignIn(context.Background(), "doc@example.com", "Str0ng!pass"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	mgr.HandleSessionExpired()
	if snap := mgr.Current(); snap.State != "anonymous" {
		t.Errorf("state after expiry = %q", snap.State)
	}
}
