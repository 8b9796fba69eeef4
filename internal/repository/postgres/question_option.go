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

type questionOptionRepository struct {
	db *sqlx.DB
}

func NewQuestionOptionRepository(db *sqlx.DB) repository.QuestionOptionRepository {
	return &questionOptionRepository{db: db}
}

func (r *questionOptionRepository) Create(ctx context.Context, option *model.QuestionOption) error {
	query := `
		INSERT INTO question_options (id, category, label, value, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	option.ID = uuid.New()
	option.CreatedAt = time.Now()
	option.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		option.ID,
		option.Category,
		option.Label,
		option.Value,
		option.DisplayOrder,
		option.CreatedAt,
		option.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create question option: %w", err)
	}
	return nil
}

func (r *questionOptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.QuestionOption, error) {
	query := `
		SELECT id, category, label, value, display_order, created_at, updated_at
		FROM question_options
		WHERE id = $1
	`
	var option model.QuestionOption
	if err := r.db.GetContext(ctx, &option, query, id); err != nil {
		return nil, fmt.Errorf("failed to get question option: %w", err)
	}
	return &option, nil
}

func (r *questionOptionRepository) GetByCategoryValue(ctx context.Context, category model.OptionCategory, value string) (*model.QuestionOption, error) {
	query := `
		SELECT id, category, label, value, display_order, created_at, updated_at
		FROM question_options
		WHERE category = $1 AND value = $2
	`
	var option model.QuestionOption
	if err := r.db.GetContext(ctx, &option, query, category, value); err != nil {
		return nil, fmt.Errorf("failed to get question option by value: %w", err)
	}
	return &option, nil
}

func (r *questionOptionRepository) Update(ctx context.Context, option *model.QuestionOption) error {
	query := `
		UPDATE question_options
		SET label = $1, value = $2, display_order = $3, updated_at = $4
		WHERE id = $5
	`
	option.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		option.Label,
		option.Value,
		option.DisplayOrder,
		option.UpdatedAt,
		option.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question option: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("question option not found")
	}
	return nil
}

func (r *questionOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM question_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question option: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("question option not found")
	}
	return nil
}

func (r *questionOptionRepository) List(ctx context.Context, category *model.OptionCategory) ([]*model.QuestionOption, error) {
	query := `
		SELECT id, category, label, value, display_order, created_at, updated_at
		FROM question_options
		WHERE ($1::text IS NULL OR category = $1)
		ORDER BY category ASC, display_order ASC
	`
	var options []*model.QuestionOption
	if err := r.db.SelectContext(ctx, &options, query, category); err != nil {
		return nil, fmt.Errorf("failed to list question options: %w", err)
	}
	return options, nil
}

func (r *questionOptionRepository) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	query := `UPDATE question_options SET display_order = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, order, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update question option order: %w", err)
	}
	return nil
}
