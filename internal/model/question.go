package model

import (
	"time"

	"github.com/google/uuid"
)

// Question is a cosmetic label override for a wizard step heading,
// keyed by the survey field it introduces.
type Question struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Key          string    `db:"key" json:"key"`
	Label        string    `db:"label" json:"label"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
