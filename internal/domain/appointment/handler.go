package appointment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments/upcoming", h.ListUpcoming)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	a, err := h.svc.Create(ctx, auth.DoctorIDFromContext(ctx), in)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListUpcoming(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.svc.ListUpcoming(ctx, auth.DoctorIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
