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

type treatmentMenuRepository struct {
	db *sqlx.DB
}

func NewTreatmentMenuRepository(db *sqlx.DB) repository.TreatmentMenuRepository {
	return &treatmentMenuRepository{db: db}
}

func (r *treatmentMenuRepository) Create(ctx context.Context, menu *model.TreatmentMenu) error {
	query := `
		INSERT INTO treatment_menus (id, name, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	menu.ID = uuid.New()
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		menu.ID,
		menu.Name,
		menu.DisplayOrder,
		menu.CreatedAt,
		menu.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create treatment menu: %w", err)
	}
	return nil
}

func (r *treatmentMenuRepository) Get(ctx context.Context, id uuid.UUID) (*model.TreatmentMenu, error) {
	query := `
		SELECT id, name, display_order, created_at, updated_at
		FROM treatment_menus
		WHERE id = $1
	`
	var menu model.TreatmentMenu
	if err := r.db.GetContext(ctx, &menu, query, id); err != nil {
		return nil, fmt.Errorf("failed to get treatment menu: %w", err)
	}
	return &menu, nil
}

func (r *treatmentMenuRepository) GetByName(ctx context.Context, name string) (*model.TreatmentMenu, error) {
	query := `
		SELECT id, name, display_order, created_at, updated_at
		FROM treatment_menus
		WHERE name = $1
	`
	var menu model.TreatmentMenu
	if err := r.db.GetContext(ctx, &menu, query, name); err != nil {
		return nil, fmt.Errorf("failed to get treatment menu by name: %w", err)
	}
	return &menu, nil
}

func (r *treatmentMenuRepository) Update(ctx context.Context, menu *model.TreatmentMenu) error {
	query := `
		UPDATE treatment_menus
		SET name = $1, display_order = $2, updated_at = $3
		WHERE id = $4
	`
	menu.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		menu.Name,
		menu.DisplayOrder,
		menu.UpdatedAt,
		menu.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update treatment menu: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment menu not found")
	}
	return nil
}

func (r *treatmentMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM treatment_menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete treatment menu: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment menu not found")
	}
	return nil
}

func (r *treatmentMenuRepository) List(ctx context.Context) ([]*model.TreatmentMenu, error) {
	query := `
		SELECT id, name, display_order, created_at, updated_at
		FROM treatment_menus
		ORDER BY display_order ASC, name ASC
	`
	var menus []*model.TreatmentMenu
	if err := r.db.SelectContext(ctx, &menus, query); err != nil {
		return nil, fmt.Errorf("failed to list treatment menus: %w", err)
	}
	return menus, nil
}

func (r *treatmentMenuRepository) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	query := `UPDATE treatment_menus SET display_order = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, order, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update treatment menu order: %w", err)
	}
	return nil
}
