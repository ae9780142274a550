package document

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// File kinds stored alongside a summary. The kind decides which AI
// operation produced the summary text.
const (
	KindDocument = "document"
	KindImage    = "image"
)

// KindForContentType derives the file kind from an upload's MIME type.
func KindForContentType(contentType string) string {
	if strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return KindImage
	}
	return KindDocument
}

// Summary is an AI-generated summary of an uploaded medical document or
// image. Summaries are append-only.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	FileURL     string    `json:"file_url"`
	FileKind    string    `json:"file_kind"`
	SummaryText string    `json:"summary_text"`
	CreatedAt   time.Time `json:"created_at"`
}
