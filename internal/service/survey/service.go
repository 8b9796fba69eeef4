package survey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/eligibility"
	"github.com/ymatsuda/clinic-survey-api/internal/email"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
	"github.com/ymatsuda/clinic-survey-api/pkg/logger"
)

// Submission is a completed wizard payload.
type Submission struct {
	ClinicID               uuid.UUID
	DoctorID               uuid.UUID
	TreatmentDate          time.Time
	TreatmentMenu          string
	Gender                 string
	AgeGroup               string
	ResultSatisfaction     string
	CounselingSatisfaction string
	AtmosphereRating       string
	StaffServiceRating     string
	Message                string
}

// SubmitResult echoes the stored satisfaction fields plus the routing
// verdict the wizard uses to pick the next page.
type SubmitResult struct {
	ID                     uuid.UUID `json:"id"`
	ClinicID               uuid.UUID `json:"clinic_id"`
	ResultSatisfaction     string    `json:"result_satisfaction"`
	CounselingSatisfaction *string   `json:"counseling_satisfaction"`
	AtmosphereRating       *string   `json:"atmosphere_rating"`
	StaffServiceRating     *string   `json:"staff_service_rating"`
	ReviewEligible         bool      `json:"review_eligible"`
}

type SurveyServicer interface {
	Submit(ctx context.Context, sub *Submission) (*SubmitResult, error)
	GetSurvey(ctx context.Context, id uuid.UUID) (*model.Survey, error)
	UpdateSurvey(ctx context.Context, survey *model.Survey) error
	DeleteSurvey(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       repository.SurveyRepository
	clinicRepo repository.ClinicRepository
	doctorRepo repository.DoctorRepository
	notifier   email.Notifier
	log        *logger.Logger
}

func NewService(repo repository.SurveyRepository, clinicRepo repository.ClinicRepository, doctorRepo repository.DoctorRepository, notifier email.Notifier, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		clinicRepo: clinicRepo,
		doctorRepo: doctorRepo,
		notifier:   notifier,
		log:        log,
	}
}

func (s *Service) Submit(ctx context.Context, sub *Submission) (*SubmitResult, error) {
	if sub.ClinicID == uuid.Nil || sub.DoctorID == uuid.Nil ||
		sub.TreatmentDate.IsZero() || strings.TrimSpace(sub.TreatmentMenu) == "" ||
		strings.TrimSpace(sub.Gender) == "" || strings.TrimSpace(sub.AgeGroup) == "" {
		return nil, apperrors.BadRequest("すべての項目を入力してください", nil)
	}

	clinic, err := s.clinicRepo.Get(ctx, sub.ClinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("指定された院が見つかりません")
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, sub.DoctorID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if err != nil || doctor.ClinicID != sub.ClinicID {
		return nil, apperrors.NotFoundMsg("指定された先生が見つかりません")
	}

	// Treatment dates may not be in the future; the boundary is the end
	// of today.
	endOfToday := endOfDay(time.Now())
	if sub.TreatmentDate.After(endOfToday) {
		return nil, apperrors.BadRequest("施術日は今日以前の日付を選択してください", nil)
	}

	resultSatisfaction := strings.TrimSpace(sub.ResultSatisfaction)
	if resultSatisfaction == "" {
		resultSatisfaction = model.DefaultResultSatisfaction
	}

	survey := &model.Survey{
		ClinicID:               sub.ClinicID,
		DoctorID:               sub.DoctorID,
		TreatmentDate:          sub.TreatmentDate,
		TreatmentMenu:          strings.TrimSpace(sub.TreatmentMenu),
		Gender:                 strings.TrimSpace(sub.Gender),
		AgeGroup:               strings.TrimSpace(sub.AgeGroup),
		ResultSatisfaction:     resultSatisfaction,
		CounselingSatisfaction: optional(sub.CounselingSatisfaction),
		AtmosphereRating:       optional(sub.AtmosphereRating),
		StaffServiceRating:     optional(sub.StaffServiceRating),
		Message:                optional(sub.Message),
	}

	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}

	s.notify(clinic, doctor, survey)

	eligible := eligibility.Eligible(eligibility.FromPointers(
		survey.ResultSatisfaction,
		survey.CounselingSatisfaction,
		survey.AtmosphereRating,
		survey.StaffServiceRating,
	))

	return &SubmitResult{
		ID:                     survey.ID,
		ClinicID:               survey.ClinicID,
		ResultSatisfaction:     survey.ResultSatisfaction,
		CounselingSatisfaction: survey.CounselingSatisfaction,
		AtmosphereRating:       survey.AtmosphereRating,
		StaffServiceRating:     survey.StaffServiceRating,
		ReviewEligible:         eligible,
	}, nil
}

func (s *Service) GetSurvey(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	survey, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("アンケートが見つかりません")
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return survey, nil
}

// UpdateSurvey is the explicit admin edit: full required-field
// validation plus the clinic/doctor consistency re-check.
func (s *Service) UpdateSurvey(ctx context.Context, survey *model.Survey) error {
	if survey.ClinicID == uuid.Nil || survey.DoctorID == uuid.Nil ||
		survey.TreatmentDate.IsZero() || strings.TrimSpace(survey.TreatmentMenu) == "" ||
		strings.TrimSpace(survey.Gender) == "" || strings.TrimSpace(survey.AgeGroup) == "" ||
		strings.TrimSpace(survey.ResultSatisfaction) == "" {
		return apperrors.BadRequest("すべての項目を入力してください", nil)
	}

	if _, err := s.GetSurvey(ctx, survey.ID); err != nil {
		return err
	}

	if _, err := s.clinicRepo.Get(ctx, survey.ClinicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundMsg("指定された院が見つかりません")
		}
		return fmt.Errorf("failed to get clinic: %w", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, survey.DoctorID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to get doctor: %w", err)
	}
	if err != nil || doctor.ClinicID != survey.ClinicID {
		return apperrors.NotFoundMsg("指定された先生が見つかりません")
	}

	if err := s.repo.Update(ctx, survey); err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	return nil
}

func (s *Service) DeleteSurvey(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSurvey(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	return nil
}

// notify sends the optional admin notification. Failures are logged and
// never surface to the respondent.
// notify dispatches the admin mail off the request path; the SMTP dial
// must not add latency to the submit response.
func (s *Service) notify(clinic *model.Clinic, doctor *model.Doctor, survey *model.Survey) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.NotifySurveySubmitted(clinic.Name, doctor.Name, survey); err != nil {
			s.log.Error(err, "failed to send survey notification")
		}
	}()
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
