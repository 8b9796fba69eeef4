package dashboard

import (
	"context"
	"fmt"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
)

// DefaultPageSize is the fixed dashboard page size.
const DefaultPageSize = 50

type DashboardServicer interface {
	GetDashboard(ctx context.Context, filter model.SurveyFilter, page int) (*model.DashboardResult, error)
	ExportRows(ctx context.Context, filter model.SurveyFilter) ([]*model.SurveyRow, error)
}

type Service struct {
	repo     repository.SurveyRepository
	pageSize int
}

func NewService(repo repository.SurveyRepository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{repo: repo, pageSize: pageSize}
}

// GetDashboard runs the two-pass dashboard query: one paginated slice
// for the table and full-set aggregates for the charts. The aggregates
// intentionally ignore pagination so they always describe the entire
// filtered set.
func (s *Service) GetDashboard(ctx context.Context, filter model.SurveyFilter, page int) (*model.DashboardResult, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.pageSize

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count surveys: %w", err)
	}

	rows, err := s.repo.ListRows(ctx, filter, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	if rows == nil {
		rows = []*model.SurveyRow{}
	}

	satisfaction, err := s.repo.CountBySatisfaction(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by satisfaction: %w", err)
	}
	menus, err := s.repo.CountByTreatmentMenu(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by treatment menu: %w", err)
	}
	ageGroups, err := s.repo.CountByAgeGroup(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by age group: %w", err)
	}
	clinics, err := s.repo.CountByClinic(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by clinic: %w", err)
	}

	return &model.DashboardResult{
		Surveys:           rows,
		TotalCount:        total,
		SatisfactionData:  emptyIfNil(satisfaction),
		TreatmentMenuData: emptyIfNil(menus),
		AgeGroupData:      emptyIfNil(ageGroups),
		ClinicData:        emptyIfNil(clinics),
	}, nil
}

// ExportRows returns the entire filtered set, unpaginated, newest
// first, for CSV export.
func (s *Service) ExportRows(ctx context.Context, filter model.SurveyFilter) ([]*model.SurveyRow, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count surveys: %w", err)
	}
	if total == 0 {
		return []*model.SurveyRow{}, nil
	}

	rows, err := s.repo.ListRows(ctx, filter, total, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys for export: %w", err)
	}
	return rows, nil
}

func (s *Service) PageSize() int {
	return s.pageSize
}

func emptyIfNil(counts []*model.CategoryCount) []*model.CategoryCount {
	if counts == nil {
		return []*model.CategoryCount{}
	}
	return counts
}
