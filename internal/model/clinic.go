package model

import (
	"time"

	"github.com/google/uuid"
)

type Clinic struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	GoogleReviewURL  string    `db:"google_review_url" json:"google_review_url"`
	ReviewClickCount int       `db:"review_click_count" json:"review_click_count"`
	DisplayOrder     int       `db:"display_order" json:"display_order"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// ClinicWithDoctors is the public form payload: a clinic and its
// doctors in display order.
type ClinicWithDoctors struct {
	Clinic
	Doctors []*Doctor `json:"doctors"`
}
