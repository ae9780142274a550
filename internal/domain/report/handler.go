package report

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/pdf"
	"github.com/divyaanshikaushik/Sahayak/pkg/pagination"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc      *Service
	exporter *pdf.Exporter
}

func NewHandler(svc *Service, exporter *pdf.Exporter) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/reports", h.CreateReport)
	api.GET("/reports/:id", h.GetReport)
	api.GET("/patients/:id/reports", h.ListPatientReports)
	api.PATCH("/reports/:id/health-status", h.SetHealthStatus)
	api.POST("/reports/:id/export", h.ExportReport)
}

func (h *Handler) CreateReport(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	r, err := h.svc.Create(ctx, auth.DoctorIDFromContext(ctx), in)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

// ListPatientReports serves the visit history, filtered by the optional
// start_date, end_date (YYYY-MM-DD, inclusive), visit_reason and
// health_status query parameters.
func (h *Handler) ListPatientReports(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	f := Filter{
		VisitReason:  c.QueryParam("visit_reason"),
		HealthStatus: c.QueryParam("health_status"),
	}
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		f.StartDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		f.EndDate = &t
	}

	reports, err := h.svc.ListByPatient(c.Request().Context(), patientID, f)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}

	page := pagination.FromContext(c)
	start, end := page.Window(len(reports))
	return c.JSON(http.StatusOK, pagination.NewResponse(reports[start:end], len(reports), page))
}

func (h *Handler) SetHealthStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		HealthStatus string `json:"health_status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.SetHealthStatus(c.Request().Context(), id, body.HealthStatus)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

// ExportReport renders the report's analysis as a PDF download.
func (h *Handler) ExportReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	out, err := h.exporter.Render(r.Analysis)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render report")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sahayak_medical_report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", out)
}
