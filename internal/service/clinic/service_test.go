package clinic

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

type fakeClinicRepo struct {
	repository.ClinicRepository
	clinics   map[uuid.UUID]*model.Clinic
	listCalls int
	deleted   []uuid.UUID
	clicks    map[uuid.UUID]int
}

func (f *fakeClinicRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if c, ok := f.clinics[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeClinicRepo) Create(ctx context.Context, c *model.Clinic) error {
	c.ID = uuid.New()
	f.clinics[c.ID] = c
	return nil
}

func (f *fakeClinicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.clinics, id)
	return nil
}

func (f *fakeClinicRepo) ListWithDoctors(ctx context.Context) ([]*model.ClinicWithDoctors, error) {
	f.listCalls++
	out := make([]*model.ClinicWithDoctors, 0, len(f.clinics))
	for _, c := range f.clinics {
		out = append(out, &model.ClinicWithDoctors{Clinic: *c, Doctors: []*model.Doctor{}})
	}
	return out, nil
}

func (f *fakeClinicRepo) IncrementClickCount(ctx context.Context, id uuid.UUID) (int, error) {
	if _, ok := f.clinics[id]; !ok {
		return 0, sql.ErrNoRows
	}
	f.clicks[id]++
	return f.clicks[id], nil
}

type fakeDoctorRepo struct {
	repository.DoctorRepository
	counts map[uuid.UUID]int
}

func (f *fakeDoctorRepo) CountByClinic(ctx context.Context, clinicID uuid.UUID) (int, error) {
	return f.counts[clinicID], nil
}

type fakeSurveyRepo struct {
	repository.SurveyRepository
	counts map[uuid.UUID]int
}

func (f *fakeSurveyRepo) CountByClinicID(ctx context.Context, clinicID uuid.UUID) (int, error) {
	return f.counts[clinicID], nil
}

func newTestService() (*Service, *fakeClinicRepo, *fakeDoctorRepo, *fakeSurveyRepo) {
	clinicRepo := &fakeClinicRepo{
		clinics: map[uuid.UUID]*model.Clinic{},
		clicks:  map[uuid.UUID]int{},
	}
	doctorRepo := &fakeDoctorRepo{counts: map[uuid.UUID]int{}}
	surveyRepo := &fakeSurveyRepo{counts: map[uuid.UUID]int{}}
	cache := gocache.New(time.Minute, time.Minute)
	return NewService(clinicRepo, doctorRepo, surveyRepo, cache), clinicRepo, doctorRepo, surveyRepo
}

func TestListClinicsCaches(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.clinics[uuid.New()] = &model.Clinic{Name: "広島院"}

	_, err := svc.ListClinics(context.Background())
	require.NoError(t, err)
	_, err = svc.ListClinics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second call must be served from cache")
}

func TestCreateClinicInvalidatesCache(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.ListClinics(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.CreateClinic(context.Background(), &model.Clinic{Name: " 新宿院 "}))

	clinics, err := svc.ListClinics(context.Background())
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, "新宿院", clinics[0].Name, "name must be trimmed")
	assert.Equal(t, 2, repo.listCalls)
}

func TestCreateClinicRequiresName(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.CreateClinic(context.Background(), &model.Clinic{Name: "   "})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestDeleteClinicBlockedByReferences(t *testing.T) {
	svc, repo, doctorRepo, surveyRepo := newTestService()

	id := uuid.New()
	repo.clinics[id] = &model.Clinic{ID: id, Name: "広島院"}
	doctorRepo.counts[id] = 3
	surveyRepo.counts[id] = 12

	err := svc.DeleteClinic(context.Background(), id)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "この院は先生3名・アンケート12件から参照されているため削除できません", appErr.Message)
	assert.Empty(t, repo.deleted, "blocked delete must not remove the row")
}

func TestDeleteClinicUnreferenced(t *testing.T) {
	svc, repo, _, _ := newTestService()

	id := uuid.New()
	repo.clinics[id] = &model.Clinic{ID: id, Name: "広島院"}

	require.NoError(t, svc.DeleteClinic(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
}

func TestTrackClick(t *testing.T) {
	svc, repo, _, _ := newTestService()

	id := uuid.New()
	repo.clinics[id] = &model.Clinic{ID: id, Name: "広島院"}

	count, err := svc.TrackClick(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.TrackClick(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTrackClickUnknownClinic(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.TrackClick(context.Background(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
