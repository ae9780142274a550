package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder values set when a profile is created on behalf of a
// first-time OAuth principal. The doctor is expected to replace them.
const (
	PlaceholderSpecialty = "General Practice"
	PlaceholderLicense   = "Pending"
)

// Doctor maps to the doctors collection. One profile per principal, never
// deleted.
type Doctor struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	FullName      string    `json:"full_name"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfileComplete reports whether the profile still carries the OAuth
// placeholders. Placeholder profiles are valid; callers may gate on this to
// prompt for completion.
func (d *Doctor) ProfileComplete() bool {
	return d.LicenseNumber != "" && d.LicenseNumber != PlaceholderLicense
}
