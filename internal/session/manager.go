// Package session tracks the authenticated principal and its professional
// profile through the sign-in lifecycle.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/divyaanshikaushik/Sahayak/internal/domain/doctor"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// State is the session lifecycle position. A session is Authenticated as
// soon as the auth service issues tokens and becomes Active once the
// professional profile resolves.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
	StateActive
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateActive:
		return "active"
	default:
		return "loading"
	}
}

// Authenticator is the slice of the hosted auth service the manager uses.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*backend.Session, error)
	SignIn(ctx context.Context, email, password string) (*backend.Session, error)
	SignOut(ctx context.Context, token string) error
}

// ProfileDirectory resolves and creates professional profiles.
type ProfileDirectory interface {
	Create(ctx context.Context, userID uuid.UUID, fullName, specialty, license string) (*doctor.Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*doctor.Doctor, error)
}

// Profile carries the registration details for a new professional.
type Profile struct {
	FullName      string `json:"full_name"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
}

const profileResolveTimeout = 10 * time.Second

// Manager owns the session state machine. Profile resolution runs on its
// own goroutine after sign-in; a result that arrives after the principal
// changed is discarded.
type Manager struct {
	auth     Authenticator
	profiles ProfileDirectory
	log      zerolog.Logger

	mu      sync.Mutex
	state   State
	session *backend.Session
	doctor  *doctor.Doctor
}

func NewManager(authSvc Authenticator, profiles ProfileDirectory, log zerolog.Logger) *Manager {
	return &Manager{auth: authSvc, profiles: profiles, log: log, state: StateLoading}
}

// Ready moves the manager out of its initial loading state.
func (m *Manager) Ready() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateLoading {
		m.state = StateAnonymous
	}
}

// Snapshot is a point-in-time view of the session.
type Snapshot struct {
	State  string         `json:"state"`
	User   *backend.User  `json:"user,omitempty"`
	Doctor *doctor.Doctor `json:"doctor,omitempty"`
}

// Current reports the session as it stands right now.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{State: m.state.String(), Doctor: m.doctor}
	if m.session != nil {
		user := m.session.User
		snap.User = &user
	}
	return snap
}

// SignIn exchanges credentials for a session and kicks off profile
// resolution in the background.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	const op = "session.signin"
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errs.E(errs.KindValidation, op, "email and password are required")
	}

	sess, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.session = sess
	m.doctor = nil
	m.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), profileResolveTimeout)
		defer cancel()
		m.resolveProfile(ctx, sess)
	}()
	return sess, nil
}

// SignUp registers a principal and its professional profile. When profile
// creation fails the fresh session is revoked so no half-registered
// principal stays signed in; a conflict means the principal was already
// registered, so the session is kept.
func (m *Manager) SignUp(ctx context.Context, email, password string, profile Profile) (*backend.Session, error) {
	const op = "session.signup"
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errs.E(errs.KindValidation, op, "email is required")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	sess, err := m.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(sess.User.ID)
	if err != nil {
		return nil, errs.E(errs.KindUnknown, op, "auth service returned an invalid principal id")
	}

	d, err := m.profiles.Create(auth.WithToken(ctx, sess.AccessToken), userID,
		profile.FullName, profile.Specialty, profile.LicenseNumber)
	if err != nil {
		if !errs.IsConflict(err) {
			if serr := m.auth.SignOut(ctx, sess.AccessToken); serr != nil {
				m.log.Warn().Err(serr).Msg("compensating sign-out failed")
			}
		}
		return nil, err
	}

	m.mu.Lock()
	m.state = StateActive
	m.session = sess
	m.doctor = d
	m.mu.Unlock()
	return sess, nil
}

// SignOut revokes the tracked session. Local state is cleared even when
// revocation fails upstream.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	sess := m.session
	m.mu.Unlock()
	if sess == nil {
		return nil
	}

	err := m.auth.SignOut(ctx, sess.AccessToken)

	m.mu.Lock()
	m.state = StateAnonymous
	m.session = nil
	m.doctor = nil
	m.mu.Unlock()
	return err
}

// HandleSessionExpired drops the session without calling the auth service.
func (m *Manager) HandleSessionExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.session = nil
	m.doctor = nil
}

func (m *Manager) resolveProfile(ctx context.Context, sess *backend.Session) {
	userID, err := uuid.Parse(sess.User.ID)
	if err != nil {
		m.log.Warn().Str("user_id", sess.User.ID).Msg("invalid principal id in session")
		return
	}
	d, err := m.profiles.GetByUserID(auth.WithToken(ctx, sess.AccessToken), userID)
	if err != nil {
		if !errs.IsNotFound(err) {
			m.log.Warn().Err(err).Msg("profile resolution failed")
		}
		return
	}
	m.applyProfile(sess.User.ID, d)
}

// applyProfile attaches a resolved profile when the principal it belongs
// to is still the signed-in one. Reports whether the result was kept.
func (m *Manager) applyProfile(userID string, d *doctor.Doctor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.User.ID != userID {
		return false
	}
	m.doctor = d
	m.state = StateActive
	return true
}
