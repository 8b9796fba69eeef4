package doctor

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

type DoctorServicer interface {
	ListGrouped(ctx context.Context, clinicID *uuid.UUID) ([]*model.DoctorGroup, error)
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	UpdateDoctor(ctx context.Context, id uuid.UUID, name string) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, doctorIDs []uuid.UUID) error
}

type Service struct {
	repo       repository.DoctorRepository
	clinicRepo repository.ClinicRepository
	surveyRepo repository.SurveyRepository
	cache      *gocache.Cache
}

func NewService(repo repository.DoctorRepository, clinicRepo repository.ClinicRepository, surveyRepo repository.SurveyRepository, cache *gocache.Cache) *Service {
	return &Service{
		repo:       repo,
		clinicRepo: clinicRepo,
		surveyRepo: surveyRepo,
		cache:      cache,
	}
}

// ListGrouped returns doctors grouped per clinic, clinics in display
// order, doctors in their own display order.
func (s *Service) ListGrouped(ctx context.Context, clinicID *uuid.UUID) ([]*model.DoctorGroup, error) {
	clinics, err := s.clinicRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	doctors, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	byClinic := make(map[uuid.UUID][]*model.Doctor)
	for _, d := range doctors {
		byClinic[d.ClinicID] = append(byClinic[d.ClinicID], d)
	}

	groups := make([]*model.DoctorGroup, 0, len(clinics))
	for _, c := range clinics {
		if clinicID != nil && c.ID != *clinicID {
			continue
		}
		ds := byClinic[c.ID]
		if ds == nil {
			ds = []*model.Doctor{}
		}
		groups = append(groups, &model.DoctorGroup{Clinic: c, Doctors: ds})
	}
	return groups, nil
}

func (s *Service) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	doctor.Name = strings.TrimSpace(doctor.Name)
	if doctor.Name == "" {
		return apperrors.BadRequest("院と先生名を入力してください", nil)
	}

	if _, err := s.clinicRepo.Get(ctx, doctor.ClinicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundMsg("指定された院が見つかりません")
		}
		return fmt.Errorf("failed to get clinic: %w", err)
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	s.cache.Delete(cacheKeyClinics)
	return nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, name string) (*model.Doctor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.BadRequest("先生名を入力してください", nil)
	}

	doctor, err := s.getDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Name = name
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	s.cache.Delete(cacheKeyClinics)
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getDoctor(ctx, id); err != nil {
		return err
	}

	count, err := s.surveyRepo.CountByDoctorID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count surveys: %w", err)
	}
	if count > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"この先生は%d件のアンケートで使用されているため削除できません", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.cache.Delete(cacheKeyClinics)
	return nil
}

// Reorder assigns each doctor the zero-based position it holds in the
// submitted list. Updates are independent per row; last write wins.
func (s *Service) Reorder(ctx context.Context, doctorIDs []uuid.UUID) error {
	for i, id := range doctorIDs {
		if err := s.repo.UpdateDisplayOrder(ctx, id, i); err != nil {
			return fmt.Errorf("failed to reorder doctor %s: %w", id, err)
		}
	}
	s.cache.Delete(cacheKeyClinics)
	return nil
}

func (s *Service) getDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("指定された先生が見つかりません")
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}
