package clinic

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

const cacheKeyClinics = "clinics_with_doctors"

type ClinicServicer interface {
	ListClinics(ctx context.Context) ([]*model.ClinicWithDoctors, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	CreateClinic(ctx context.Context, clinic *model.Clinic) error
	UpdateClinic(ctx context.Context, clinic *model.Clinic) error
	DeleteClinic(ctx context.Context, id uuid.UUID) error
	TrackClick(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo       repository.ClinicRepository
	doctorRepo repository.DoctorRepository
	surveyRepo repository.SurveyRepository
	cache      *gocache.Cache
}

func NewService(repo repository.ClinicRepository, doctorRepo repository.DoctorRepository, surveyRepo repository.SurveyRepository, cache *gocache.Cache) *Service {
	return &Service{
		repo:       repo,
		doctorRepo: doctorRepo,
		surveyRepo: surveyRepo,
		cache:      cache,
	}
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.ClinicWithDoctors, error) {
	if cached, ok := s.cache.Get(cacheKeyClinics); ok {
		return cached.([]*model.ClinicWithDoctors), nil
	}

	clinics, err := s.repo.ListWithDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	s.cache.SetDefault(cacheKeyClinics, clinics)
	return clinics, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("clinic", err)
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) CreateClinic(ctx context.Context, clinic *model.Clinic) error {
	clinic.Name = strings.TrimSpace(clinic.Name)
	if clinic.Name == "" {
		return apperrors.BadRequest("clinic name is required", nil)
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}

	s.cache.Delete(cacheKeyClinics)
	return nil
}

func (s *Service) UpdateClinic(ctx context.Context, clinic *model.Clinic) error {
	clinic.Name = strings.TrimSpace(clinic.Name)
	if clinic.Name == "" {
		return apperrors.BadRequest("clinic name is required", nil)
	}

	if _, err := s.GetClinic(ctx, clinic.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, clinic); err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	s.cache.Delete(cacheKeyClinics)
	return nil
}

func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClinic(ctx, id); err != nil {
		return err
	}

	doctors, err := s.doctorRepo.CountByClinic(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count doctors: %w", err)
	}
	surveys, err := s.surveyRepo.CountByClinicID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count surveys: %w", err)
	}
	if doctors > 0 || surveys > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"この院は先生%d名・アンケート%d件から参照されているため削除できません", doctors, surveys))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	s.cache.Delete(cacheKeyClinics)
	return nil
}

func (s *Service) TrackClick(ctx context.Context, id uuid.UUID) (int, error) {
	count, err := s.repo.IncrementClickCount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.NotFound("clinic", err)
		}
		return 0, fmt.Errorf("failed to track click: %w", err)
	}
	return count, nil
}
