package ai

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// Handler exposes the assist operations that run without persisting
// anything: image diagnostics and symptom-based prediction.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/ai/analyze-image", h.AnalyzeImage)
	api.POST("/ai/predict", h.Predict)
}

// AnalyzeImage accepts a multipart medical image plus reported symptoms
// and returns the structured analysis text.
func (h *Handler) AnalyzeImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	analysis, err := h.client.AnalyzeImage(c.Request().Context(), data,
		fh.Header.Get("Content-Type"), c.FormValue("symptoms"))
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"analysis": analysis})
}

type predictRequest struct {
	Symptoms   string            `json:"symptoms"`
	Parameters map[string]string `json:"parameters"`
}

// Predict returns potential diagnoses for reported symptoms and vitals.
func (h *Handler) Predict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	analysis, err := h.client.PredictDisease(c.Request().Context(), req.Symptoms, req.Parameters)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"analysis": analysis})
}
