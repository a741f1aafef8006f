package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"coachly/internal/domain/entity"
	"coachly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTrainerUsecase struct {
	mock.Mock
}

func (m *mockTrainerUsecase) UpsertOwnProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpsertTrainerProfileInput) (*entity.TrainerProfile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.TrainerProfile), args.Error(1)
}

func (m *mockTrainerUsecase) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*entity.TrainerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.TrainerProfile), args.Error(1)
}

func (m *mockTrainerUsecase) ListTrainers(ctx context.Context) ([]*usecase.TrainerListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*usecase.TrainerListing), args.Error(1)
}

func (m *mockTrainerUsecase) NearbyTrainers(ctx context.Context, input *usecase.NearbyTrainersInput) ([]*usecase.NearbyTrainer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*usecase.NearbyTrainer), args.Error(1)
}

func (m *mockTrainerUsecase) InviteQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func newTrainerHandler(uc usecase.TrainerUsecase) *TrainerHandler {
	return NewTrainerHandler(TrainerHandlerParams{
		TrainerUC: uc,
		Logger:    newDiscardLogger(),
	})
}

func newTrainerTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestTrainerHandler_NearbyTrainers(t *testing.T) {
	uc := &mockTrainerUsecase{}
	h := newTrainerHandler(uc)

	c, rec := newTrainerTestContext(http.MethodGet, "/api/v1/trainers/nearby?lat=52.2297&lng=21.0122&radius_km=5")

	nearby := []*usecase.NearbyTrainer{
		{
			TrainerListing: usecase.TrainerListing{
				UserID:    uuid.New(),
				Username:  "anna_trener",
				FullName:  "Anna Trener",
				Specialty: "strength",
				City:      "Warszawa",
				Accepting: true,
			},
			DistanceKm: 1.8,
		},
	}
	uc.On("NearbyTrainers", mock.Anything, mock.MatchedBy(func(input *usecase.NearbyTrainersInput) bool {
		return input.Latitude == 52.2297 && input.Longitude == 21.0122 && input.RadiusKm == 5
	})).Return(nearby, nil)

	err := h.NearbyTrainers(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anna_trener")
	assert.Contains(t, rec.Body.String(), "distance_km")
	uc.AssertExpectations(t)
}

func TestTrainerHandler_NearbyTrainers_MissingCoordinates(t *testing.T) {
	uc := &mockTrainerUsecase{}
	h := newTrainerHandler(uc)

	c, rec := newTrainerTestContext(http.MethodGet, "/api/v1/trainers/nearby?lng=21.0122")

	err := h.NearbyTrainers(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
	uc.AssertNotCalled(t, "NearbyTrainers", mock.Anything, mock.Anything)
}

func TestTrainerHandler_NearbyTrainers_OmittedRadiusMeansDefault(t *testing.T) {
	uc := &mockTrainerUsecase{}
	h := newTrainerHandler(uc)

	c, rec := newTrainerTestContext(http.MethodGet, "/api/v1/trainers/nearby?lat=52.2297&lng=21.0122")

	uc.On("NearbyTrainers", mock.Anything, mock.MatchedBy(func(input *usecase.NearbyTrainersInput) bool {
		return input.RadiusKm == 0
	})).Return([]*usecase.NearbyTrainer{}, nil)

	err := h.NearbyTrainers(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestTrainerHandler_ListTrainers(t *testing.T) {
	uc := &mockTrainerUsecase{}
	h := newTrainerHandler(uc)

	c, rec := newTrainerTestContext(http.MethodGet, "/api/v1/trainers")

	listings := []*usecase.TrainerListing{
		{UserID: uuid.New(), Username: "anna_trener", FullName: "Anna Trener", HourlyRate: 150},
		{UserID: uuid.New(), Username: "piotr_coach", FullName: "Piotr Coach", HourlyRate: 90},
	}
	uc.On("ListTrainers", mock.Anything).Return(listings, nil)

	err := h.ListTrainers(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anna_trener")
	assert.Contains(t, rec.Body.String(), "piotr_coach")
}

func TestTrainerHandler_InviteQR(t *testing.T) {
	uc := &mockTrainerUsecase{}
	h := newTrainerHandler(uc)

	userID := uuid.New()
	c, rec := newTrainerTestContext(http.MethodGet, "/api/v1/trainers/me/invite-qr")
	c.Set("userID", userID)

	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	uc.On("InviteQR", mock.Anything, userID).Return(png, nil)

	err := h.InviteQR(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestTrainerHandler_UpsertMyProfile_MissingAuthContext(t *testing.T) {
	uc := &mockTrainerUsecase{}
	h := newTrainerHandler(uc)

	c, rec := newTrainerTestContext(http.MethodPut, "/api/v1/trainers/me")

	err := h.UpsertMyProfile(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "UpsertOwnProfile", mock.Anything, mock.Anything, mock.Anything)
}
