package document

import (
	"io"
	"net/http"

	"github.com/google/uuid"
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
	api.POST("/documents/summarize", h.Summarize)
	api.POST("/documents/summarize-batch", h.SummarizeBatch)
	api.GET("/patients/:id/summaries", h.ListByPatient)
}

// Summarize accepts one multipart file plus its extracted text (for
// documents) or symptom context (for images).
func (h *Handler) Summarize(c echo.Context) error {
	patientID, err := uuid.Parse(c.FormValue("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
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

	ctx := c.Request().Context()
	sum, err := h.svc.Summarize(ctx, auth.DoctorIDFromContext(ctx), SummarizeInput{
		PatientID:   patientID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
		Text:        c.FormValue("text"),
		Symptoms:    c.FormValue("symptoms"),
	})
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, sum)
}

type batchFile struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
	Text        string `json:"text"`
	Symptoms    string `json:"symptoms"`
}

type batchRequest struct {
	PatientID uuid.UUID   `json:"patient_id"`
	Files     []batchFile `json:"files"`
}

// SummarizeBatch accepts a JSON body with base64-encoded file data and
// processes the files concurrently. Per-file failures come back inline
// rather than failing the whole request.
func (h *Handler) SummarizeBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one file is required")
	}

	inputs := make([]SummarizeInput, 0, len(req.Files))
	for _, f := range req.Files {
		inputs = append(inputs, SummarizeInput{
			PatientID:   req.PatientID,
			FileName:    f.FileName,
			ContentType: f.ContentType,
			Data:        f.Data,
			Text:        f.Text,
			Symptoms:    f.Symptoms,
		})
	}

	ctx := c.Request().Context()
	items := h.svc.SummarizeBatch(ctx, auth.DoctorIDFromContext(ctx), inputs)
	return c.JSON(http.StatusOK, map[string]any{"results": items})
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
