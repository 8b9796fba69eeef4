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

type questionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) List(ctx context.Context) ([]*model.Question, error) {
	query := `
		SELECT id, key, label, display_order, created_at, updated_at
		FROM questions
		ORDER BY display_order ASC
	`
	var questions []*model.Question
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) Upsert(ctx context.Context, question *model.Question) error {
	query := `
		INSERT INTO questions (id, key, label, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE
		SET label = EXCLUDED.label, updated_at = EXCLUDED.updated_at
		RETURNING id, display_order, created_at
	`
	now := time.Now()
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	question.UpdatedAt = now

	row := r.db.QueryRowxContext(ctx, query,
		question.ID,
		question.Key,
		question.Label,
		question.DisplayOrder,
		now,
		now,
	)
	if err := row.Scan(&question.ID, &question.DisplayOrder, &question.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert question: %w", err)
	}
	return nil
}
