package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/divyaanshikaushik/Sahayak/internal/domain/doctor"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// doctorResolver is the slice of the doctor service the session endpoints
// need beyond the manager itself.
type doctorResolver interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*doctor.Doctor, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*doctor.Doctor, error)
}

type Handler struct {
	mgr     *Manager
	doctors doctorResolver
}

func NewHandler(mgr *Manager, doctors doctorResolver) *Handler {
	return &Handler{mgr: mgr, doctors: doctors}
}

// RegisterPublic mounts the credential endpoints that run without a token.
func (h *Handler) RegisterPublic(g *echo.Group) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

// RegisterAuthenticated mounts the endpoints that need a valid token but
// not a resolved profile.
func (h *Handler) RegisterAuthenticated(g *echo.Group) {
	g.POST("/auth/logout", h.Logout)
	g.GET("/me", h.Me)
}

// RegisterCallback mounts the OAuth completion endpoint.
func (h *Handler) RegisterCallback(g *echo.Group) {
	g.GET("/auth/callback", h.Callback)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Profile
}

type sessionResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int            `json:"expires_in"`
	User         any            `json:"user"`
	Doctor       *doctor.Doctor `json:"doctor,omitempty"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.mgr.SignUp(c.Request().Context(), req.Email, req.Password, req.Profile)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	snap := h.mgr.Current()
	return c.JSON(http.StatusCreated, sessionResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		User:         sess.User,
		Doctor:       snap.Doctor,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.mgr.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		User:         sess.User,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.mgr.SignOut(c.Request().Context()); err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Me reports the caller's principal and, when registration is complete,
// the professional profile behind it.
func (h *Handler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserIDFromContext(ctx)

	resp := map[string]any{
		"state": StateAuthenticated.String(),
		"user": map[string]string{
			"id":    userID.String(),
			"email": auth.EmailFromContext(ctx),
		},
	}
	d, err := h.doctors.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		resp["state"] = StateActive.String()
		resp["doctor"] = d
	case !errs.IsNotFound(err):
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// Callback completes an OAuth sign-in: first-time principals get a
// placeholder profile and are routed to finish registration, everyone
// else goes straight to the dashboard.
func (h *Handler) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	d, err := h.doctors.EnsureProfile(ctx, auth.UserIDFromContext(ctx), auth.EmailFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}

	redirect := "/dashboard"
	if !d.ProfileComplete() {
		redirect = "/register"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"doctor":      d,
		"redirect_to": redirect,
	})
}
