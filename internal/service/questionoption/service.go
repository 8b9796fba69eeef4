package questionoption

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

const cacheKeyOptions = "question_options"

type QuestionOptionServicer interface {
	ListGrouped(ctx context.Context, category *model.OptionCategory) (map[model.OptionCategory][]*model.QuestionOption, error)
	CreateOption(ctx context.Context, option *model.QuestionOption) error
	UpdateOption(ctx context.Context, id uuid.UUID, label, value string, order *int) (*model.QuestionOption, error)
	DeleteOption(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, optionIDs []uuid.UUID) error
}

type Service struct {
	repo       repository.QuestionOptionRepository
	surveyRepo repository.SurveyRepository
	cache      *gocache.Cache
}

func NewService(repo repository.QuestionOptionRepository, surveyRepo repository.SurveyRepository, cache *gocache.Cache) *Service {
	return &Service{repo: repo, surveyRepo: surveyRepo, cache: cache}
}

// ListGrouped returns options keyed by category, each list in display
// order. The unfiltered result is cached for the form-session TTL.
func (s *Service) ListGrouped(ctx context.Context, category *model.OptionCategory) (map[model.OptionCategory][]*model.QuestionOption, error) {
	if category == nil {
		if cached, ok := s.cache.Get(cacheKeyOptions); ok {
			return cached.(map[model.OptionCategory][]*model.QuestionOption), nil
		}
	}

	options, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list question options: %w", err)
	}

	grouped := make(map[model.OptionCategory][]*model.QuestionOption)
	for _, o := range options {
		grouped[o.Category] = append(grouped[o.Category], o)
	}

	if category == nil {
		s.cache.SetDefault(cacheKeyOptions, grouped)
	}
	return grouped, nil
}

func (s *Service) CreateOption(ctx context.Context, option *model.QuestionOption) error {
	option.Label = strings.TrimSpace(option.Label)
	option.Value = strings.TrimSpace(option.Value)
	if option.Category == "" || option.Label == "" || option.Value == "" {
		return apperrors.BadRequest("カテゴリ、ラベル、値を入力してください", nil)
	}
	if !option.Category.Valid() {
		return apperrors.BadRequest(fmt.Sprintf("不明なカテゴリです: %s", option.Category), nil)
	}

	if err := s.checkValueFree(ctx, option.Category, option.Value); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, option); err != nil {
		return fmt.Errorf("failed to create question option: %w", err)
	}

	s.cache.Delete(cacheKeyOptions)
	return nil
}

func (s *Service) UpdateOption(ctx context.Context, id uuid.UUID, label, value string, order *int) (*model.QuestionOption, error) {
	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	if label == "" || value == "" {
		return nil, apperrors.BadRequest("ラベルと値を入力してください", nil)
	}

	option, err := s.getOption(ctx, id)
	if err != nil {
		return nil, err
	}

	// (category, value) uniqueness is only re-checked when the value
	// actually changes.
	if value != option.Value {
		if err := s.checkValueFree(ctx, option.Category, value); err != nil {
			return nil, err
		}
	}

	option.Label = label
	option.Value = value
	if order != nil {
		option.DisplayOrder = *order
	}

	if err := s.repo.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to update question option: %w", err)
	}

	s.cache.Delete(cacheKeyOptions)
	return option, nil
}

func (s *Service) DeleteOption(ctx context.Context, id uuid.UUID) error {
	option, err := s.getOption(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.surveyRepo.CountByOptionValue(ctx, option.Category, option.Value)
	if err != nil {
		return fmt.Errorf("failed to count surveys: %w", err)
	}
	if count > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"この選択肢は%d件のアンケートで使用されているため削除できません", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question option: %w", err)
	}

	s.cache.Delete(cacheKeyOptions)
	return nil
}

func (s *Service) Reorder(ctx context.Context, optionIDs []uuid.UUID) error {
	for i, id := range optionIDs {
		if err := s.repo.UpdateDisplayOrder(ctx, id, i); err != nil {
			return fmt.Errorf("failed to reorder question option %s: %w", id, err)
		}
	}
	s.cache.Delete(cacheKeyOptions)
	return nil
}

func (s *Service) getOption(ctx context.Context, id uuid.UUID) (*model.QuestionOption, error) {
	option, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("指定された選択肢が見つかりません")
		}
		return nil, fmt.Errorf("failed to get question option: %w", err)
	}
	return option, nil
}

func (s *Service) checkValueFree(ctx context.Context, category model.OptionCategory, value string) error {
	_, err := s.repo.GetByCategoryValue(ctx, category, value)
	if err == nil {
		return apperrors.Conflict("この選択肢は既に存在します")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check option value: %w", err)
	}
	return nil
}
