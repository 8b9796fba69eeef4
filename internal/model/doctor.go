package model

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ClinicID     uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name         string    `db:"name" json:"name"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DoctorGroup groups a clinic's doctors for the admin editor.
type DoctorGroup struct {
	Clinic  *Clinic   `json:"clinic"`
	Doctors []*Doctor `json:"doctors"`
}
