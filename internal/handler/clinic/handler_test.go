package clinic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
)

type fakeService struct {
	clinics []*model.ClinicWithDoctors
	clicks  map[uuid.UUID]int
	created *model.Clinic
	deleted []uuid.UUID
	err     error
}

func (f *fakeService) ListClinics(ctx context.Context) ([]*model.ClinicWithDoctors, error) {
	return f.clinics, f.err
}

func (f *fakeService) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return nil, f.err
}

func (f *fakeService) CreateClinic(ctx context.Context, clinic *model.Clinic) error {
	if f.err != nil {
		return f.err
	}
	clinic.ID = uuid.New()
	f.created = clinic
	return nil
}

func (f *fakeService) UpdateClinic(ctx context.Context, clinic *model.Clinic) error {
	return f.err
}

func (f *fakeService) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeService) TrackClick(ctx context.Context, id uuid.UUID) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.clicks[id]++
	return f.clicks[id], nil
}

func newTestRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	h.RegisterPublicRoutes(r.Group(""))
	h.RegisterAdminRoutes(r.Group("/admin"))
	return r
}

func TestListClinics(t *testing.T) {
	svc := &fakeService{clinics: []*model.ClinicWithDoctors{
		{
			Clinic:  model.Clinic{ID: uuid.New(), Name: "広島院"},
			Doctors: []*model.Doctor{{Name: "松本院長"}},
		},
	}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clinics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "広島院")
	assert.Contains(t, w.Body.String(), "松本院長")
}

func TestTrackClick(t *testing.T) {
	svc := &fakeService{clicks: map[uuid.UUID]int{}}
	r := newTestRouter(svc)

	id := uuid.New()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clinics/"+id.String()+"/click", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Count)
}

func TestTrackClickBadID(t *testing.T) {
	r := newTestRouter(&fakeService{clicks: map[uuid.UUID]int{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clinics/not-a-uuid/click", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateClinic(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	body := `{"name": "新宿院", "google_review_url": "https://g.page/example/review"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/clinics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "新宿院", svc.created.Name)
}

func TestCreateClinicMissingName(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/clinics", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)
}

func TestDeleteClinicConflictPassesThrough(t *testing.T) {
	svc := &fakeService{err: apperrors.Conflict("この院は先生2名・アンケート5件から参照されているため削除できません")}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/clinics/"+uuid.New().String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "削除できません")
}
