package model

import (
	"time"

	"github.com/google/uuid"
)

// OptionCategory identifies which survey field a QuestionOption belongs to.
type OptionCategory string

const (
	CategoryGender                 OptionCategory = "gender"
	CategoryAgeGroup               OptionCategory = "ageGroup"
	CategorySatisfaction           OptionCategory = "satisfaction"
	CategoryResultSatisfaction     OptionCategory = "resultSatisfaction"
	CategoryCounselingSatisfaction OptionCategory = "counselingSatisfaction"
	CategoryAtmosphereRating       OptionCategory = "atmosphereRating"
	CategoryStaffServiceRating     OptionCategory = "staffServiceRating"
)

// OptionCategories lists every valid category.
var OptionCategories = []OptionCategory{
	CategoryGender,
	CategoryAgeGroup,
	CategorySatisfaction,
	CategoryResultSatisfaction,
	CategoryCounselingSatisfaction,
	CategoryAtmosphereRating,
	CategoryStaffServiceRating,
}

// Valid reports whether c is one of the known categories.
func (c OptionCategory) Valid() bool {
	for _, known := range OptionCategories {
		if c == known {
			return true
		}
	}
	return false
}

type QuestionOption struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Category     OptionCategory `db:"category" json:"category"`
	Label        string         `db:"label" json:"label"`
	Value        string         `db:"value" json:"value"`
	DisplayOrder int            `db:"display_order" json:"display_order"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
