package question

import (
	"context"
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
)

const cacheKeyQuestions = "questions"

type QuestionServicer interface {
	ListQuestions(ctx context.Context) ([]*model.Question, error)
	UpsertQuestion(ctx context.Context, key, label string) (*model.Question, error)
}

type Service struct {
	repo  repository.QuestionRepository
	cache *gocache.Cache
}

func NewService(repo repository.QuestionRepository, cache *gocache.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) ListQuestions(ctx context.Context) ([]*model.Question, error) {
	if cached, ok := s.cache.Get(cacheKeyQuestions); ok {
		return cached.([]*model.Question), nil
	}

	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	s.cache.SetDefault(cacheKeyQuestions, questions)
	return questions, nil
}

func (s *Service) UpsertQuestion(ctx context.Context, key, label string) (*model.Question, error) {
	key = strings.TrimSpace(key)
	label = strings.TrimSpace(label)
	if key == "" || label == "" {
		return nil, apperrors.BadRequest("key and label are required", nil)
	}

	question := &model.Question{Key: key, Label: label}
	if err := s.repo.Upsert(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to upsert question: %w", err)
	}

	s.cache.Delete(cacheKeyQuestions)
	return question, nil
}
