package questionoption

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
)

type fakeOptionRepo struct {
	repository.QuestionOptionRepository
	options map[uuid.UUID]*model.QuestionOption
	deleted []uuid.UUID
}

func (f *fakeOptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.QuestionOption, error) {
	if o, ok := f.options[id]; ok {
		return o, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeOptionRepo) GetByCategoryValue(ctx context.Context, category model.OptionCategory, value string) (*model.QuestionOption, error) {
	for _, o := range f.options {
		if o.Category == category && o.Value == value {
			return o, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeOptionRepo) Create(ctx context.Context, o *model.QuestionOption) error {
	o.ID = uuid.New()
	f.options[o.ID] = o
	return nil
}

func (f *fakeOptionRepo) Update(ctx context.Context, o *model.QuestionOption) error {
	f.options[o.ID] = o
	return nil
}

func (f *fakeOptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.options, id)
	return nil
}

func (f *fakeOptionRepo) List(ctx context.Context, category *model.OptionCategory) ([]*model.QuestionOption, error) {
	out := []*model.QuestionOption{}
	for _, o := range f.options {
		if category == nil || o.Category == *category {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeSurveyRepo struct {
	repository.SurveyRepository
	counts map[string]int
}

func (f *fakeSurveyRepo) CountByOptionValue(ctx context.Context, category model.OptionCategory, value string) (int, error) {
	return f.counts[string(category)+"/"+value], nil
}

func newTestService() (*Service, *fakeOptionRepo, *fakeSurveyRepo) {
	optionRepo := &fakeOptionRepo{options: map[uuid.UUID]*model.QuestionOption{}}
	surveyRepo := &fakeSurveyRepo{counts: map[string]int{}}
	cache := gocache.New(time.Minute, time.Minute)
	return NewService(optionRepo, surveyRepo, cache), optionRepo, surveyRepo
}

func TestCreateOptionRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: "favoriteColor",
		Label:    "赤",
		Value:    "赤",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateOptionRejectsDuplicateValueInCategory(t *testing.T) {
	svc, _, _ := newTestService()

	option := &model.QuestionOption{
		Category: model.CategoryGender,
		Label:    "男性",
		Value:    "男性",
	}
	require.NoError(t, svc.CreateOption(context.Background(), option))

	err := svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: model.CategoryGender,
		Label:    "男性（別表記）",
		Value:    "男性",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCreateOptionSameValueDifferentCategory(t *testing.T) {
	svc, _, _ := newTestService()

	require.NoError(t, svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: model.CategoryResultSatisfaction,
		Label:    "普通",
		Value:    "普通",
	}))
	// Same value is fine under another category.
	require.NoError(t, svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: model.CategoryAtmosphereRating,
		Label:    "普通",
		Value:    "普通",
	}))
}

func TestUpdateOptionKeepingValueSkipsUniquenessCheck(t *testing.T) {
	svc, _, _ := newTestService()

	option := &model.QuestionOption{
		Category: model.CategoryAgeGroup,
		Label:    "30代",
		Value:    "30代",
	}
	require.NoError(t, svc.CreateOption(context.Background(), option))

	updated, err := svc.UpdateOption(context.Background(), option.ID, "30代の方", "30代", nil)
	require.NoError(t, err)
	assert.Equal(t, "30代の方", updated.Label)
	assert.Equal(t, "30代", updated.Value)
}

func TestDeleteOptionBlockedBySurveys(t *testing.T) {
	svc, repo, surveyRepo := newTestService()

	option := &model.QuestionOption{
		Category: model.CategoryResultSatisfaction,
		Label:    "満足",
		Value:    "満足",
	}
	require.NoError(t, svc.CreateOption(context.Background(), option))
	surveyRepo.counts["resultSatisfaction/満足"] = 9

	err := svc.DeleteOption(context.Background(), option.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "この選択肢は9件のアンケートで使用されているため削除できません", appErr.Message)
	assert.Empty(t, repo.deleted)
}

func TestListGroupedGroupsByCategory(t *testing.T) {
	svc, _, _ := newTestService()

	require.NoError(t, svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: model.CategoryGender, Label: "男性", Value: "男性",
	}))
	require.NoError(t, svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: model.CategoryGender, Label: "女性", Value: "女性",
	}))
	require.NoError(t, svc.CreateOption(context.Background(), &model.QuestionOption{
		Category: model.CategoryAgeGroup, Label: "20代", Value: "20代",
	}))

	grouped, err := svc.ListGrouped(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, grouped[model.CategoryGender], 2)
	assert.Len(t, grouped[model.CategoryAgeGroup], 1)

	cat := model.CategoryAgeGroup
	filtered, err := svc.ListGrouped(context.Background(), &cat)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Len(t, filtered[model.CategoryAgeGroup], 1)
}
