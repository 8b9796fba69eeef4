package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/eligibility"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
	"github.com/ymatsuda/clinic-survey-api/pkg/genai"
	"github.com/ymatsuda/clinic-survey-api/pkg/logger"
)

// ineligibleMessage is the user-facing explanation of the review gate.
const ineligibleMessage = "口コミは、施術への満足度が「大変満足」または「満足」で、カウンセリング・院内の雰囲気・スタッフの対応に「不満」「悪い」がない場合のみ生成できます"

// Generator is the generateContent operation of the text-generation API.
type Generator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// Result is a generated review plus where to post it.
type Result struct {
	ReviewText      string    `json:"review_text"`
	ClinicID        uuid.UUID `json:"clinic_id"`
	GoogleReviewURL string    `json:"google_review_url"`
}

type ReviewServicer interface {
	GenerateForSurvey(ctx context.Context, surveyID uuid.UUID) (*Result, error)
}

type Service struct {
	surveyRepo     repository.SurveyRepository
	clinicRepo     repository.ClinicRepository
	generator      Generator
	primaryModel   string
	fallbackModels []string
	log            *logger.Logger
}

func NewService(surveyRepo repository.SurveyRepository, clinicRepo repository.ClinicRepository, generator Generator, primaryModel string, fallbackModels []string, log *logger.Logger) *Service {
	return &Service{
		surveyRepo:     surveyRepo,
		clinicRepo:     clinicRepo,
		generator:      generator,
		primaryModel:   primaryModel,
		fallbackModels: fallbackModels,
		log:            log,
	}
}

// GenerateForSurvey re-evaluates the eligibility gate server-side and,
// when it passes, produces a review text for the survey.
func (s *Service) GenerateForSurvey(ctx context.Context, surveyID uuid.UUID) (*Result, error) {
	row, err := s.surveyRepo.GetRow(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundMsg("アンケートが見つかりません")
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}

	eligible := eligibility.Eligible(eligibility.FromPointers(
		row.ResultSatisfaction,
		row.CounselingSatisfaction,
		row.AtmosphereRating,
		row.StaffServiceRating,
	))
	if !eligible {
		return nil, apperrors.BadRequest(ineligibleMessage, nil)
	}

	clinic, err := s.clinicRepo.Get(ctx, row.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	prompt := buildPrompt(row)
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Result{
		ReviewText:      text,
		ClinicID:        clinic.ID,
		GoogleReviewURL: clinic.GoogleReviewURL,
	}, nil
}

// generate tries the primary model first, then walks the fallback list
// on model-not-found failures. Auth failures abort immediately; the
// fallback list exists only for retired or renamed model identifiers.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	text, err := s.generator.GenerateContent(ctx, s.primaryModel, prompt)
	if err == nil {
		return text, nil
	}
	if errors.Is(err, genai.ErrUnauthorized) {
		return "", apperrors.UnauthorizedMsg("Google AI APIキーが無効です", err)
	}
	if !errors.Is(err, genai.ErrModelNotFound) {
		return "", fmt.Errorf("口コミ文の生成に失敗しました: %w", err)
	}

	s.log.Warn("primary model unavailable, trying fallbacks", "model", s.primaryModel)

	lastErr := err
	for _, m := range s.fallbackModels {
		text, err = s.generator.GenerateContent(ctx, m, prompt)
		if err == nil {
			s.log.Info("fallback model succeeded", "model", m)
			return text, nil
		}
		if errors.Is(err, genai.ErrUnauthorized) {
			return "", apperrors.UnauthorizedMsg("Google AI APIキーが無効です", err)
		}
		lastErr = err
	}

	return "", fmt.Errorf("利用可能なモデルが見つかりません: %w", lastErr)
}

func buildPrompt(row *model.SurveyRow) string {
	var satisfactionLines []string
	satisfactionLines = append(satisfactionLines,
		fmt.Sprintf("施術結果への満足度: %s", row.ResultSatisfaction))
	if row.CounselingSatisfaction != nil {
		satisfactionLines = append(satisfactionLines,
			fmt.Sprintf("カウンセリング: %s", *row.CounselingSatisfaction))
	}
	if row.AtmosphereRating != nil {
		satisfactionLines = append(satisfactionLines,
			fmt.Sprintf("院内の雰囲気: %s", *row.AtmosphereRating))
	}
	if row.StaffServiceRating != nil {
		satisfactionLines = append(satisfactionLines,
			fmt.Sprintf("スタッフの対応: %s", *row.StaffServiceRating))
	}

	var sb strings.Builder
	sb.WriteString("以下のアンケート結果を基に、Googleマップの口コミとして自然で適切な文章を生成してください。\n")
	sb.WriteString("口コミは日本語で、100文字から200文字程度でお願いします。\n")
	sb.WriteString("個人名や具体的な施術内容の詳細は含めず、一般的な表現でお願いします。\n")
	sb.WriteString("満足度の情報を自然に反映させてください。\n\n")
	sb.WriteString(fmt.Sprintf("院名: %s\n", row.ClinicName))
	sb.WriteString(fmt.Sprintf("先生名: %s\n", row.DoctorName))
	sb.WriteString(fmt.Sprintf("施術メニュー: %s\n", row.TreatmentMenu))
	sb.WriteString(strings.Join(satisfactionLines, "\n"))
	sb.WriteString("\n")
	if row.Message != nil {
		sb.WriteString(fmt.Sprintf("その他のコメント: %s\n", *row.Message))
	}
	sb.WriteString("\n口コミ文を生成してください:")
	return sb.String()
}
