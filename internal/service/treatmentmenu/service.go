package treatmentmenu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
)

const cacheKeyMenus = "treatment_menus"

type TreatmentMenuServicer interface {
	ListMenus(ctx context.Context) ([]*model.TreatmentMenu, error)
	CreateMenu(ctx context.Context, name string, order int) (*model.TreatmentMenu, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, name string, order *int) (*model.TreatmentMenu, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, menuIDs []uuid.UUID) error
}

type Service struct {
	repo       repository.TreatmentMenuRepository
	surveyRepo repository.SurveyRepository
	cache      *gocache.Cache
}

func NewService(repo repository.TreatmentMenuRepository, surveyRepo repository.SurveyRepository, cache *gocache.Cache) *Service {
	return &Service{repo: repo, surveyRepo: surveyRepo, cache: cache}
}

func (s *Service) ListMenus(ctx context.Context) ([]*model.TreatmentMenu, error) {
	if cached, ok := s.cache.Get(cacheKeyMenus); ok {
		return cached.([]*model.TreatmentMenu), nil
	}

	menus, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment menus: %w", err)
	}

	s.cache.SetDefault(cacheKeyMenus, menus)
	return menus, nil
}

func (s *Service) CreateMenu(ctx context.Context, name string, order int) (*model.TreatmentMenu, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.BadRequest("施術メニュー名を入力してください", nil)
	}

	if err := s.checkNameFree(ctx, name); err != nil {
		return nil, err
	}

	menu := &model.TreatmentMenu{Name: name, DisplayOrder: order}
	if err := s.repo.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create treatment menu: %w", err)
	}

	s.cache.Delete(cacheKeyMenus)
	return menu, nil
}

func (s *Service) UpdateMenu(ctx context.Context, id uuid.UUID, name string, order *int) (*model.TreatmentMenu, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.BadRequest("施術メニュー名を入力してください", nil)
	}

	menu, err := s.getMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	// Uniqueness is only re-checked when the name actually changes.
	if name != menu.Name {
		if err := s.checkNameFree(ctx, name); err != nil {
			return nil, err
		}
	}

	menu.Name = name
	if order != nil {
		menu.DisplayOrder = *order
	}

	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to update treatment menu: %w", err)
	}

	s.cache.Delete(cacheKeyMenus)
	return menu, nil
}

func (s *Service) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	menu, err := s.getMenu(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.surveyRepo.CountByMenuName(ctx, menu.Name)
	if err != nil {
		return fmt.Errorf("failed to count surveys: %w", err)
	}
	if count > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"この施術メニューは%d件のアンケートで使用されているため削除できません", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete treatment menu: %w", err)
	}

	s.cache.Delete(cacheKeyMenus)
	return nil
}

func (s *Service) Reorder(ctx context.Context, menuIDs []uuid.UUID) error {
	for i, id := range menuIDs {
		if err := s.repo.UpdateDisplayOrder(ctx, id, i); err != nil {
			return fmt.Errorf("failed to reorder treatment menu %s: %w", id, err)
		}
	}
	s.cache.Delete(cacheKeyMenus)
	return nil
}

func (s *Service) getMenu(ctx context.Context, id uuid.UUID) (*model.TreatmentMenu, error) {
	menu, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("指定された施術メニューが見つかりません")
		}
		return nil, fmt.Errorf("failed to get treatment menu: %w", err)
	}
	return menu, nil
}

func (s *Service) checkNameFree(ctx context.Context, name string) error {
	_, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return apperrors.Conflict("この施術メニューは既に存在します")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check treatment menu name: %w", err)
	}
	return nil
}
