package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultResultSatisfaction is stored when a respondent skips the
// result-satisfaction step.
const DefaultResultSatisfaction = "普通"

type Survey struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	ClinicID               uuid.UUID `db:"clinic_id" json:"clinic_id"`
	DoctorID               uuid.UUID `db:"doctor_id" json:"doctor_id"`
	TreatmentDate          time.Time `db:"treatment_date" json:"treatment_date"`
	TreatmentMenu          string    `db:"treatment_menu" json:"treatment_menu"`
	Gender                 string    `db:"gender" json:"gender"`
	AgeGroup               string    `db:"age_group" json:"age_group"`
	ResultSatisfaction     string    `db:"result_satisfaction" json:"result_satisfaction"`
	CounselingSatisfaction *string   `db:"counseling_satisfaction" json:"counseling_satisfaction"`
	AtmosphereRating       *string   `db:"atmosphere_rating" json:"atmosphere_rating"`
	StaffServiceRating     *string   `db:"staff_service_rating" json:"staff_service_rating"`
	Message                *string   `db:"message" json:"message"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// Satisfaction is the legacy single-column view of the four-field
// breakdown, kept for dashboard rows and CSV exports.
func (s *Survey) Satisfaction() string {
	if s.ResultSatisfaction == "" {
		return DefaultResultSatisfaction
	}
	return s.ResultSatisfaction
}

// SurveyRow is a dashboard row: a survey joined with its clinic and
// doctor display names.
type SurveyRow struct {
	Survey
	ClinicName string `db:"clinic_name" json:"clinic_name"`
	DoctorName string `db:"doctor_name" json:"doctor_name"`
}

// SurveyFilter narrows dashboard queries. Date bounds are inclusive;
// the end date carries an end-of-day boundary applied by the caller.
type SurveyFilter struct {
	ClinicID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// DashboardResult is one dashboard query: the current page of rows plus
// count-by-category breakdowns over the entire filtered set.
type DashboardResult struct {
	Surveys           []*SurveyRow     `json:"surveys"`
	TotalCount        int              `json:"total_count"`
	SatisfactionData  []*CategoryCount `json:"satisfaction_data"`
	TreatmentMenuData []*CategoryCount `json:"treatment_menu_data"`
	AgeGroupData      []*CategoryCount `json:"age_group_data"`
	ClinicData        []*CategoryCount `json:"clinic_data"`
}
