package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
)

type surveyRepository struct {
	db *sqlx.DB
}

func NewSurveyRepository(db *sqlx.DB) repository.SurveyRepository {
	return &surveyRepository{db: db}
}

const surveyColumns = `
	s.id, s.clinic_id, s.doctor_id, s.treatment_date, s.treatment_menu,
	s.gender, s.age_group, s.result_satisfaction, s.counseling_satisfaction,
	s.atmosphere_rating, s.staff_service_rating, s.message, s.created_at
`

// optionColumns maps a question-option category to the survey column it
// feeds, for the delete-guard reference count.
var optionColumns = map[model.OptionCategory]string{
	model.CategoryGender:                 "gender",
	model.CategoryAgeGroup:               "age_group",
	model.CategorySatisfaction:           "result_satisfaction",
	model.CategoryResultSatisfaction:     "result_satisfaction",
	model.CategoryCounselingSatisfaction: "counseling_satisfaction",
	model.CategoryAtmosphereRating:       "atmosphere_rating",
	model.CategoryStaffServiceRating:     "staff_service_rating",
}

func buildSurveyWhere(filter model.SurveyFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.ClinicID != nil {
		args = append(args, *filter.ClinicID)
		conds = append(conds, fmt.Sprintf("s.clinic_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("s.treatment_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("s.treatment_date <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *surveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	query := `
		INSERT INTO surveys (
			id, clinic_id, doctor_id, treatment_date, treatment_menu,
			gender, age_group, result_satisfaction, counseling_satisfaction,
			atmosphere_rating, staff_service_rating, message, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`
	survey.ID = uuid.New()
	survey.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		survey.ID,
		survey.ClinicID,
		survey.DoctorID,
		survey.TreatmentDate,
		survey.TreatmentMenu,
		survey.Gender,
		survey.AgeGroup,
		survey.ResultSatisfaction,
		survey.CounselingSatisfaction,
		survey.AtmosphereRating,
		survey.StaffServiceRating,
		survey.Message,
		survey.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	return nil
}

func (r *surveyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	query := fmt.Sprintf(`SELECT %s FROM surveys s WHERE s.id = $1`, surveyColumns)
	var survey model.Survey
	if err := r.db.GetContext(ctx, &survey, query, id); err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return &survey, nil
}

func (r *surveyRepository) GetRow(ctx context.Context, id uuid.UUID) (*model.SurveyRow, error) {
	query := fmt.Sprintf(`
		SELECT %s, c.name AS clinic_name, d.name AS doctor_name
		FROM surveys s
		JOIN clinics c ON c.id = s.clinic_id
		JOIN doctors d ON d.id = s.doctor_id
		WHERE s.id = $1
	`, surveyColumns)
	var row model.SurveyRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get survey row: %w", err)
	}
	return &row, nil
}

func (r *surveyRepository) Update(ctx context.Context, survey *model.Survey) error {
	query := `
		UPDATE surveys
		SET clinic_id = $1, doctor_id = $2, treatment_date = $3, treatment_menu = $4,
			gender = $5, age_group = $6, result_satisfaction = $7,
			counseling_satisfaction = $8, atmosphere_rating = $9,
			staff_service_rating = $10, message = $11
		WHERE id = $12
	`
	result, err := r.db.ExecContext(ctx, query,
		survey.ClinicID,
		survey.DoctorID,
		survey.TreatmentDate,
		survey.TreatmentMenu,
		survey.Gender,
		survey.AgeGroup,
		survey.ResultSatisfaction,
		survey.CounselingSatisfaction,
		survey.AtmosphereRating,
		survey.StaffServiceRating,
		survey.Message,
		survey.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("survey not found")
	}
	return nil
}

func (r *surveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("survey not found")
	}
	return nil
}

func (r *surveyRepository) ListRows(ctx context.Context, filter model.SurveyFilter, limit, offset int) ([]*model.SurveyRow, error) {
	where, args := buildSurveyWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, c.name AS clinic_name, d.name AS doctor_name
		FROM surveys s
		JOIN clinics c ON c.id = s.clinic_id
		JOIN doctors d ON d.id = s.doctor_id
		%s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, surveyColumns, where, len(args)-1, len(args))

	var rows []*model.SurveyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return rows, nil
}

func (r *surveyRepository) Count(ctx context.Context, filter model.SurveyFilter) (int, error) {
	where, args := buildSurveyWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM surveys s %s`, where)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count surveys: %w", err)
	}
	return count, nil
}

func (r *surveyRepository) countBy(ctx context.Context, expr, join string, filter model.SurveyFilter) ([]*model.CategoryCount, error) {
	where, args := buildSurveyWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s AS name, COUNT(*) AS value
		FROM surveys s
		%s
		%s
		GROUP BY name
		ORDER BY value DESC, name ASC
	`, expr, join, where)

	var counts []*model.CategoryCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate surveys: %w", err)
	}
	return counts, nil
}

func (r *surveyRepository) CountBySatisfaction(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error) {
	return r.countBy(ctx, "s.result_satisfaction", "", filter)
}

func (r *surveyRepository) CountByTreatmentMenu(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error) {
	return r.countBy(ctx, "s.treatment_menu", "", filter)
}

func (r *surveyRepository) CountByAgeGroup(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error) {
	return r.countBy(ctx, "s.age_group", "", filter)
}

func (r *surveyRepository) CountByClinic(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error) {
	return r.countBy(ctx, "c.name", "JOIN clinics c ON c.id = s.clinic_id", filter)
}

func (r *surveyRepository) CountByClinicID(ctx context.Context, clinicID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM surveys WHERE clinic_id = $1`, clinicID); err != nil {
		return 0, fmt.Errorf("failed to count surveys by clinic: %w", err)
	}
	return count, nil
}

func (r *surveyRepository) CountByDoctorID(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM surveys WHERE doctor_id = $1`, doctorID); err != nil {
		return 0, fmt.Errorf("failed to count surveys by doctor: %w", err)
	}
	return count, nil
}

func (r *surveyRepository) CountByMenuName(ctx context.Context, name string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM surveys WHERE treatment_menu = $1`, name); err != nil {
		return 0, fmt.Errorf("failed to count surveys by menu: %w", err)
	}
	return count, nil
}

func (r *surveyRepository) CountByOptionValue(ctx context.Context, category model.OptionCategory, value string) (int, error) {
	column, ok := optionColumns[category]
	if !ok {
		return 0, fmt.Errorf("unknown option category: %s", category)
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM surveys WHERE %s = $1`, column)
	var count int
	if err := r.db.GetContext(ctx, &count, query, value); err != nil {
		return 0, fmt.Errorf("failed to count surveys by option value: %w", err)
	}
	return count, nil
}
