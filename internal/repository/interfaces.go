package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
)

type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Clinic, error)
	ListWithDoctors(ctx context.Context) ([]*model.ClinicWithDoctors, error)
	IncrementClickCount(ctx context.Context, id uuid.UUID) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, clinicID *uuid.UUID) ([]*model.Doctor, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
	CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error)
}

type TreatmentMenuRepository interface {
	Create(ctx context.Context, menu *model.TreatmentMenu) error
	Get(ctx context.Context, id uuid.UUID) (*model.TreatmentMenu, error)
	GetByName(ctx context.Context, name string) (*model.TreatmentMenu, error)
	Update(ctx context.Context, menu *model.TreatmentMenu) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.TreatmentMenu, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
}

type QuestionOptionRepository interface {
	Create(ctx context.Context, option *model.QuestionOption) error
	Get(ctx context.Context, id uuid.UUID) (*model.QuestionOption, error)
	GetByCategoryValue(ctx context.Context, category model.OptionCategory, value string) (*model.QuestionOption, error)
	Update(ctx context.Context, option *model.QuestionOption) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, category *model.OptionCategory) ([]*model.QuestionOption, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
}

type QuestionRepository interface {
	List(ctx context.Context) ([]*model.Question, error)
	Upsert(ctx context.Context, question *model.Question) error
}

type SurveyRepository interface {
	Create(ctx context.Context, survey *model.Survey) error
	Get(ctx context.Context, id uuid.UUID) (*model.Survey, error)
	GetRow(ctx context.Context, id uuid.UUID) (*model.SurveyRow, error)
	Update(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListRows(ctx context.Context, filter model.SurveyFilter, limit, offset int) ([]*model.SurveyRow, error)
	Count(ctx context.Context, filter model.SurveyFilter) (int, error)
	CountBySatisfaction(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error)
	CountByTreatmentMenu(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error)
	CountByAgeGroup(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error)
	CountByClinic(ctx context.Context, filter model.SurveyFilter) ([]*model.CategoryCount, error)
	CountByClinicID(ctx context.Context, clinicID uuid.UUID) (int, error)
	CountByDoctorID(ctx context.Context, doctorID uuid.UUID) (int, error)
	CountByMenuName(ctx context.Context, name string) (int, error)
	CountByOptionValue(ctx context.Context, category model.OptionCategory, value string) (int, error)
}

type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}
