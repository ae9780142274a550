package patient

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
	"github.com/divyaanshikaushik/Sahayak/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	p, err := h.svc.Create(ctx, auth.UserIDFromContext(ctx), auth.DoctorIDFromContext(ctx), in)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// ListPatients serves the dashboard list (created_at desc) and the picker
// list (?order=name), optionally narrowed by a name substring (?q=).
func (h *Handler) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()

	order := OrderByNewest
	if c.QueryParam("order") == "name" {
		order = OrderByName
	}

	patients, err := h.svc.ListByDoctor(ctx, auth.DoctorIDFromContext(ctx), order)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	patients = FilterByName(patients, c.QueryParam("q"))

	page := pagination.FromContext(c)
	start, end := page.Window(len(patients))
	return c.JSON(http.StatusOK, pagination.NewResponse(patients[start:end], len(patients), page))
}
