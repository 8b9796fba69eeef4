package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
)

type clinicRepository struct {
	db *sqlx.DB
}

func NewClinicRepository(db *sqlx.DB) repository.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (
			id, name, google_review_url, review_click_count, display_order, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`
	clinic.ID = uuid.New()
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.GoogleReviewURL,
		clinic.ReviewClickCount,
		clinic.DisplayOrder,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, google_review_url, review_click_count, display_order, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, google_review_url = $2, display_order = $3, updated_at = $4
		WHERE id = $5
	`
	clinic.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.GoogleReviewURL,
		clinic.DisplayOrder,
		clinic.UpdatedAt,
		clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clinic not found")
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clinic not found")
	}
	return nil
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `
		SELECT id, name, google_review_url, review_click_count, display_order, created_at, updated_at
		FROM clinics
		ORDER BY display_order ASC, created_at ASC
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) ListWithDoctors(ctx context.Context) ([]*model.ClinicWithDoctors, error) {
	clinics, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, clinic_id, name, display_order, created_at, updated_at
		FROM doctors
		ORDER BY clinic_id ASC, display_order ASC, name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	byClinic := make(map[uuid.UUID][]*model.Doctor, len(clinics))
	for _, d := range doctors {
		byClinic[d.ClinicID] = append(byClinic[d.ClinicID], d)
	}

	result := make([]*model.ClinicWithDoctors, 0, len(clinics))
	for _, c := range clinics {
		ds := byClinic[c.ID]
		if ds == nil {
			ds = []*model.Doctor{}
		}
		result = append(result, &model.ClinicWithDoctors{Clinic: *c, Doctors: ds})
	}
	return result, nil
}

func (r *clinicRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE clinics
		SET review_click_count = review_click_count + 1, updated_at = $1
		WHERE id = $2
		RETURNING review_click_count
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, time.Now(), id); err != nil {
		return 0, fmt.Errorf("failed to increment click count: %w", err)
	}
	return count, nil
}
