package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfUnwraps(t *testing.T) {
	base := E(KindNotFound, "patient.get", "patient not found")
	wrapped := fmt.Errorf("list dashboard: %w", base)

	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", got)
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped) = false, want true")
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want KindUnknown", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindTransient, true},
		{KindUnknown, true},
		{KindUpstreamAI, true},
		{KindNotFound, false},
		{KindConflict, false},
		{KindValidation, false},
		{KindConfiguration, false},
		{KindRateLimit, false},
	}
	for _, tt := range tests {
		err := E(tt.kind, "op", "msg")
		if got := IsRetryable(err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindRateLimit, http.StatusTooManyRequests},
		{KindConfiguration, http.StatusServiceUnavailable},
		{KindTransient, http.StatusBadGateway},
		{KindUpstreamAI, http.StatusBadGateway},
		{KindUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(E(tt.kind, "op", "")); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindTransient, "report.create", cause)
	if want := "report.create: connection refused"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}
