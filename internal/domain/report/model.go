package report

import (
	"time"

	"github.com/google/uuid"
)

// Visit reasons recorded on a report or appointment.
const (
	ReasonRegularCheckup = "regular_checkup"
	ReasonFirstMeet      = "first_meet"
	ReasonCasualCheckup  = "casual_checkup"
	ReasonEmergency      = "emergency"
)

var visitReasonLabels = map[string]string{
	ReasonRegularCheckup: "Regular Checkup",
	ReasonFirstMeet:      "First Meet",
	ReasonCasualCheckup:  "Casual Checkup",
	ReasonEmergency:      "Emergency",
}

// ValidVisitReason reports whether v is a known visit reason.
func ValidVisitReason(v string) bool {
	_, ok := visitReasonLabels[v]
	return ok
}

// VisitReasonLabel returns the display label for a visit reason, or the
// raw value when unknown.
func VisitReasonLabel(v string) string {
	if label, ok := visitReasonLabels[v]; ok {
		return label
	}
	return v
}

// Health trend values. Once set, a report's trend is never cleared.
const (
	StatusImproving     = "improving"
	StatusDeteriorating = "deteriorating"
)

// ValidHealthStatus reports whether v is a known health trend.
func ValidHealthStatus(v string) bool {
	return v == StatusImproving || v == StatusDeteriorating
}

// Report maps to the medical_reports collection: one diagnostic visit
// record, append-only apart from the health trend.
type Report struct {
	ID           uuid.UUID `json:"id"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	VisitReason  string    `json:"visit_reason"`
	ImageURL     string    `json:"image_url"`
	Symptoms     string    `json:"symptoms"`
	Analysis     string    `json:"analysis"`
	HealthStatus *string   `json:"health_status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
