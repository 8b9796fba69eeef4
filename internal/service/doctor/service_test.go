package doctor

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

type fakeDoctorRepo struct {
	repository.DoctorRepository
	doctors map[uuid.UUID]*model.Doctor
	orders  map[uuid.UUID]int
	deleted []uuid.UUID
}

func (f *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	d.ID = uuid.New()
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, d *model.Doctor) error {
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.doctors, id)
	return nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, clinicID *uuid.UUID) ([]*model.Doctor, error) {
	out := []*model.Doctor{}
	for _, d := range f.doctors {
		if clinicID == nil || d.ClinicID == *clinicID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	f.orders[id] = order
	return nil
}

type fakeClinicRepo struct {
	repository.ClinicRepository
	clinics map[uuid.UUID]*model.Clinic
}

func (f *fakeClinicRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if c, ok := f.clinics[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeClinicRepo) List(ctx context.Context) ([]*model.Clinic, error) {
	out := make([]*model.Clinic, 0, len(f.clinics))
	for _, c := range f.clinics {
		out = append(out, c)
	}
	return out, nil
}

type fakeSurveyRepo struct {
	repository.SurveyRepository
	counts map[uuid.UUID]int
}

func (f *fakeSurveyRepo) CountByDoctorID(ctx context.Context, doctorID uuid.UUID) (int, error) {
	return f.counts[doctorID], nil
}

func newTestService() (*Service, *fakeDoctorRepo, *fakeClinicRepo, *fakeSurveyRepo) {
	doctorRepo := &fakeDoctorRepo{
		doctors: map[uuid.UUID]*model.Doctor{},
		orders:  map[uuid.UUID]int{},
	}
	clinicRepo := &fakeClinicRepo{clinics: map[uuid.UUID]*model.Clinic{}}
	surveyRepo := &fakeSurveyRepo{counts: map[uuid.UUID]int{}}
	cache := gocache.New(time.Minute, time.Minute)
	return NewService(doctorRepo, clinicRepo, surveyRepo, cache), doctorRepo, clinicRepo, surveyRepo
}

func TestCreateDoctorUnknownClinic(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.CreateDoctor(context.Background(), &model.Doctor{
		ClinicID: uuid.New(),
		Name:     "高橋院長",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "指定された院が見つかりません", appErr.Message)
}

func TestCreateDoctorTrimsName(t *testing.T) {
	svc, repo, clinicRepo, _ := newTestService()

	clinicID := uuid.New()
	clinicRepo.clinics[clinicID] = &model.Clinic{ID: clinicID, Name: "岡山院"}

	doctor := &model.Doctor{ClinicID: clinicID, Name: " 高橋院長 "}
	require.NoError(t, svc.CreateDoctor(context.Background(), doctor))
	assert.Equal(t, "高橋院長", repo.doctors[doctor.ID].Name)
}

func TestDeleteDoctorBlockedBySurveys(t *testing.T) {
	svc, repo, _, surveyRepo := newTestService()

	id := uuid.New()
	repo.doctors[id] = &model.Doctor{ID: id, Name: "高橋院長"}
	surveyRepo.counts[id] = 7

	err := svc.DeleteDoctor(context.Background(), id)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "この先生は7件のアンケートで使用されているため削除できません", appErr.Message)
	assert.Empty(t, repo.deleted)
}

func TestDeleteDoctorUnreferenced(t *testing.T) {
	svc, repo, _, _ := newTestService()

	id := uuid.New()
	repo.doctors[id] = &model.Doctor{ID: id, Name: "高橋院長"}

	require.NoError(t, svc.DeleteDoctor(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
}

func TestReorderAssignsListPositions(t *testing.T) {
	svc, repo, _, _ := newTestService()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	require.NoError(t, svc.Reorder(context.Background(), ids))

	for i, id := range ids {
		assert.Equal(t, i, repo.orders[id])
	}
}

func TestListGrouped(t *testing.T) {
	svc, _, clinicRepo, _ := newTestService()

	clinicID := uuid.New()
	clinicRepo.clinics[clinicID] = &model.Clinic{ID: clinicID, Name: "京都院"}

	emptyClinic := uuid.New()
	clinicRepo.clinics[emptyClinic] = &model.Clinic{ID: emptyClinic, Name: "神戸院"}

	d := &model.Doctor{ClinicID: clinicID, Name: "内山院長"}
	require.NoError(t, svc.CreateDoctor(context.Background(), d))

	groups, err := svc.ListGrouped(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	for _, g := range groups {
		assert.NotNil(t, g.Doctors, "clinics without doctors get an empty slice")
		if g.Clinic.ID == clinicID {
			require.Len(t, g.Doctors, 1)
			assert.Equal(t, "内山院長", g.Doctors[0].Name)
		} else {
			assert.Empty(t, g.Doctors)
		}
	}

	filtered, err := svc.ListGrouped(context.Background(), &clinicID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, clinicID, filtered[0].Clinic.ID)
}
