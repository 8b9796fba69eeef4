package survey

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
	surveyService "github.com/ymatsuda/clinic-survey-api/internal/service/survey"
)

type fakeService struct {
	lastSubmission *surveyService.Submission
	result         *surveyService.SubmitResult
	err            error
}

func (f *fakeService) Submit(ctx context.Context, sub *surveyService.Submission) (*surveyService.SubmitResult, error) {
	f.lastSubmission = sub
	return f.result, f.err
}

func (f *fakeService) GetSurvey(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	return nil, nil
}

func (f *fakeService) UpdateSurvey(ctx context.Context, survey *model.Survey) error { return nil }

func (f *fakeService) DeleteSurvey(ctx context.Context, id uuid.UUID) error { return nil }

func newTestRouter(t *testing.T, svc *fakeService) *gin.Engine {
	t.Helper()
	require.NoError(t, handler.RegisterValidations())
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func submitBody(clinicID, doctorID uuid.UUID) string {
	return fmt.Sprintf(`{
		"clinic_id": %q,
		"doctor_id": %q,
		"treatment_date": "2025-04-01",
		"treatment_menu": "フォトフェイシャル",
		"gender": "女性",
		"age_group": "20代",
		"result_satisfaction": "大変満足",
		"counseling_satisfaction": "満足"
	}`, clinicID, doctorID)
}

func TestSubmitSurvey(t *testing.T) {
	clinicID := uuid.New()
	svc := &fakeService{result: &surveyService.SubmitResult{
		ID:                 uuid.New(),
		ClinicID:           clinicID,
		ResultSatisfaction: "大変満足",
		ReviewEligible:     true,
	}}
	r := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys", strings.NewReader(submitBody(clinicID, uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastSubmission)
	assert.Equal(t, clinicID, svc.lastSubmission.ClinicID)
	assert.Equal(t, "フォトフェイシャル", svc.lastSubmission.TreatmentMenu)
	assert.Equal(t, "満足", svc.lastSubmission.CounselingSatisfaction)
	assert.Equal(t, 2025, svc.lastSubmission.TreatmentDate.Year())

	var resp struct {
		Status string                     `json:"status"`
		Data   surveyService.SubmitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.ReviewEligible)
}

func TestSubmitSurveyMissingRequiredField(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(t, svc)

	body := fmt.Sprintf(`{"clinic_id": %q, "doctor_id": %q}`, uuid.New(), uuid.New())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "すべての項目を入力してください")
	assert.Nil(t, svc.lastSubmission, "invalid payloads must not reach the service")
}

func TestSubmitSurveyRejectsBadDateFormat(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(t, svc)

	body := strings.Replace(submitBody(uuid.New(), uuid.New()), "2025-04-01", "01/04/2025", 1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastSubmission)
}

func TestSubmitSurveyRejectsBadUUID(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(t, svc)

	body := strings.Replace(submitBody(uuid.New(), uuid.New()), `"clinic_id": "`, `"clinic_id": "not-a-uuid-`, 1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
