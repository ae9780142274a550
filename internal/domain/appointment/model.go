package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointments collection. Appointments are booked
// and listed; there is no update or cancel.
type Appointment struct {
	ID           uuid.UUID `json:"id"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	VisitReason  string    `json:"visit_reason"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
