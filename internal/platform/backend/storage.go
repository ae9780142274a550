package backend

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// allowedMIME maps the upload content types accepted for medical documents
// to the file extension stored for them.
var allowedMIME = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
}

// Storage handles object uploads for medical documents.
type Storage struct {
	client  *Client
	bucket  string
	maxSize int64
}

func NewStorage(client *Client, bucket string, maxSize int64) *Storage {
	return &Storage{client: client, bucket: bucket, maxSize: maxSize}
}

// Upload stores data under folder/<random>.<ext> in the bucket and returns
// the object path and its public URL. Size and content type are validated
// before any network call.
func (s *Storage) Upload(ctx context.Context, token, folder, contentType string, data []byte) (objectPath, publicURL string, err error) {
	const op = "storage.upload"

	if len(data) == 0 {
		return "", "", errs.E(errs.KindValidation, op, "file is empty")
	}
	if int64(len(data)) > s.maxSize {
		return "", "", errs.Errorf(errs.KindValidation, op,
			"file size %d exceeds limit %d", len(data), s.maxSize)
	}
	ext, ok := allowedMIME[strings.ToLower(contentType)]
	if !ok {
		return "", "", errs.Errorf(errs.KindValidation, op,
			"unsupported content type %q", contentType)
	}

	objectPath = path.Join(folder, fmt.Sprintf("%s.%s", uuid.New().String(), ext))

	resp, rerr := s.client.request(ctx, token).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("%s/object/%s/%s", storagePath, s.bucket, objectPath))
	if cerr := s.client.classify(op, resp, rerr); cerr != nil {
		return "", "", cerr
	}

	publicURL = fmt.Sprintf("%s%s/object/public/%s/%s",
		s.client.http.BaseURL, storagePath, s.bucket, objectPath)
	return objectPath, publicURL, nil
}

// Delete removes an object from the bucket.
func (s *Storage) Delete(ctx context.Context, token, objectPath string) error {
	const op = "storage.delete"
	resp, err := s.client.request(ctx, token).
		Delete(fmt.Sprintf("%s/object/%s/%s", storagePath, s.bucket, objectPath))
	return s.client.classify(op, resp, err)
}
