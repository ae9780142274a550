package patient

import (
	"time"

	"github.com/google/uuid"
)

// DOBLayout is the calendar-date format for dates of birth.
const DOBLayout = "2006-01-02"

// Patient maps to the patients collection. Each record belongs to the
// doctor who registered it.
type Patient struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	FullName       string    `json:"full_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Age in whole years as of now.
func (p *Patient) Age(now time.Time) int {
	dob, err := time.Parse(DOBLayout, p.DateOfBirth)
	if err != nil {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
