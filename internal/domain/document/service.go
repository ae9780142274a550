package document

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// Uploader stores raw file bytes and returns a public URL for them.
type Uploader interface {
	Upload(ctx context.Context, token, folder, contentType string, data []byte) (objectPath, publicURL string, err error)
}

// Summarizer produces summary text for document text or image bytes.
type Summarizer interface {
	SummarizeDocument(ctx context.Context, text string) (string, error)
	AnalyzeImage(ctx context.Context, image []byte, mimeType, symptoms string) (string, error)
}

type Service struct {
	repo    Repository
	storage Uploader
	assist  Summarizer
}

func NewService(repo Repository, storage Uploader, assist Summarizer) *Service {
	return &Service{repo: repo, storage: storage, assist: assist}
}

// SummarizeInput carries one file to summarize. Text extraction happens
// upstream: for documents the extracted text arrives in Text, for images
// the raw bytes are analyzed directly against Symptoms.
type SummarizeInput struct {
	PatientID   uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
	Text        string
	Symptoms    string
}

// Summarize uploads the file, runs the AI summary for its kind and
// persists the result. Each step runs in order so a failed summary never
// leaves a persisted record without text.
func (s *Service) Summarize(ctx context.Context, doctorID uuid.UUID, in SummarizeInput) (*Summary, error) {
	const op = "document.summarize"
	if doctorID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "doctor id is required")
	}
	if in.PatientID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "patient id is required")
	}
	kind := KindForContentType(in.ContentType)
	if kind == KindDocument && strings.TrimSpace(in.Text) == "" {
		return nil, errs.E(errs.KindValidation, op, "extracted document text is required")
	}
	if kind == KindImage && strings.TrimSpace(in.Symptoms) == "" {
		return nil, errs.E(errs.KindValidation, op, "symptoms are required for image analysis")
	}

	_, publicURL, err := s.storage.Upload(ctx, auth.TokenFromContext(ctx),
		doctorID.String(), in.ContentType, in.Data)
	if err != nil {
		return nil, err
	}

	var text string
	switch kind {
	case KindImage:
		text, err = s.assist.AnalyzeImage(ctx, in.Data, in.ContentType, in.Symptoms)
	default:
		text, err = s.assist.SummarizeDocument(ctx, in.Text)
	}
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		DoctorID:    doctorID,
		PatientID:   in.PatientID,
		FileURL:     publicURL,
		FileKind:    kind,
		SummaryText: text,
	}
	if err := s.repo.Create(ctx, sum); err != nil {
		return nil, err
	}
	return sum, nil
}

// BatchItem is the outcome for one file of a batch. Exactly one of
// Summary and Error is set.
type BatchItem struct {
	FileName string   `json:"file_name"`
	Summary  *Summary `json:"summary,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// SummarizeBatch fans the files out to one goroutine each. A file's
// upload, summary and persist still run sequentially; only the files
// themselves run concurrently, so the result order is arbitrary.
func (s *Service) SummarizeBatch(ctx context.Context, doctorID uuid.UUID, inputs []SummarizeInput) []BatchItem {
	results := make(chan BatchItem, len(inputs))
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in SummarizeInput) {
			defer wg.Done()
			item := BatchItem{FileName: in.FileName}
			sum, err := s.Summarize(ctx, doctorID, in)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Summary = sum
			}
			results <- item
		}(in)
	}
	wg.Wait()
	close(results)

	out := make([]BatchItem, 0, len(inputs))
	for item := range results {
		out = append(out, item)
	}
	return out
}

// ListByPatient returns a patient's summaries, newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Summary, error) {
	const op = "document.list_by_patient"
	if patientID == uuid.Nil {
		return nil, errs.E(errs.KindValidation, op, "patient id is required")
	}
	return s.repo.ListByPatient(ctx, patientID)
}
