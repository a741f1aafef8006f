package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"coachly/internal/delivery/http/response"
	"coachly/internal/domain/entity"
	"coachly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TrainerHandlerParams holds dependencies for TrainerHandler, injected by Fx.
type TrainerHandlerParams struct {
	fx.In

	TrainerUC usecase.TrainerUsecase
	Logger    *slog.Logger
}

// TrainerHandler holds dependencies for trainer profile and discovery handlers.
type TrainerHandler struct {
	trainerUC usecase.TrainerUsecase
	logger    *slog.Logger
}

// NewTrainerHandler is the constructor for TrainerHandler.
func NewTrainerHandler(params TrainerHandlerParams) *TrainerHandler {
	return &TrainerHandler{
		trainerUC: params.TrainerUC,
		logger:    params.Logger,
	}
}

// UpsertTrainerProfileRequest represents the request body for creating or
// editing the caller's trainer profile. Omitted fields are left unchanged.
type UpsertTrainerProfileRequest struct {
	Bio        *string  `json:"bio,omitempty"`
	Specialty  *string  `json:"specialty,omitempty"`
	HourlyRate *int     `json:"hourly_rate,omitempty"`
	City       *string  `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Accepting  *bool    `json:"accepting,omitempty"`
}

// TrainerProfileResponse is the owner's view of a trainer profile.
type TrainerProfileResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Bio        string    `json:"bio"`
	Specialty  string    `json:"specialty"`
	HourlyRate int       `json:"hourly_rate"`
	City       string    `json:"city"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accepting  bool      `json:"accepting"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TrainerListingResponse is the public view of a trainer in listings.
type TrainerListingResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Bio        string    `json:"bio"`
	Specialty  string    `json:"specialty"`
	HourlyRate int       `json:"hourly_rate"`
	City       string    `json:"city"`
	Accepting  bool      `json:"accepting"`
}

// NearbyTrainerResponse is a listing annotated with the distance from the search point.
type NearbyTrainerResponse struct {
	TrainerListingResponse
	DistanceKm float64 `json:"distance_km"`
}

func newTrainerProfileResponse(profile *entity.TrainerProfile) *TrainerProfileResponse {
	if profile == nil {
		return nil
	}

	return &TrainerProfileResponse{
		UserID:     profile.UserID,
		Bio:        profile.Bio,
		Specialty:  profile.Specialty,
		HourlyRate: profile.HourlyRate,
		City:       profile.City,
		Latitude:   profile.Latitude,
		Longitude:  profile.Longitude,
		Accepting:  profile.Accepting,
		UpdatedAt:  profile.UpdatedAt,
	}
}

func newTrainerListingResponse(listing *usecase.TrainerListing) TrainerListingResponse {
	return TrainerListingResponse{
		UserID:     listing.UserID,
		Username:   listing.Username,
		FullName:   listing.FullName,
		Bio:        listing.Bio,
		Specialty:  listing.Specialty,
		HourlyRate: listing.HourlyRate,
		City:       listing.City,
		Accepting:  listing.Accepting,
	}
}

// UpsertMyProfile handles creating or editing the caller's trainer profile.
func (h *TrainerHandler) UpsertMyProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req UpsertTrainerProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid trainer profile input")
	}

	input := &usecase.UpsertTrainerProfileInput{
		Bio:        req.Bio,
		Specialty:  req.Specialty,
		HourlyRate: req.HourlyRate,
		City:       req.City,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Accepting:  req.Accepting,
	}

	profile, err := h.trainerUC.UpsertOwnProfile(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTrainerProfileResponse(profile), "Trainer profile saved successfully")
}

// GetMyProfile handles retrieving the caller's trainer profile.
func (h *TrainerHandler) GetMyProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.trainerUC.GetOwnProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTrainerProfileResponse(profile), "Trainer profile retrieved successfully")
}

// ListTrainers handles the public trainer directory listing.
func (h *TrainerHandler) ListTrainers(c echo.Context) error {
	listings, err := h.trainerUC.ListTrainers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]TrainerListingResponse, 0, len(listings))
	for _, listing := range listings {
		out = append(out, newTrainerListingResponse(listing))
	}

	return response.Success(c, http.StatusOK, out, "Trainers retrieved successfully")
}

// NearbyTrainers handles distance-based trainer discovery.
// lat and lng are required query parameters; radius_km is optional and
// falls back to the configured default when omitted.
func (h *TrainerHandler) NearbyTrainers(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "lat query parameter must be a number")
	}

	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "lng query parameter must be a number")
	}

	var radiusKm float64
	if raw := c.QueryParam("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "radius_km query parameter must be a number")
		}
	}

	input := &usecase.NearbyTrainersInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radiusKm,
	}

	nearby, err := h.trainerUC.NearbyTrainers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]NearbyTrainerResponse, 0, len(nearby))
	for _, trainer := range nearby {
		out = append(out, NearbyTrainerResponse{
			TrainerListingResponse: newTrainerListingResponse(&trainer.TrainerListing),
			DistanceKm:             trainer.DistanceKm,
		})
	}

	return response.Success(c, http.StatusOK, out, "Nearby trainers retrieved successfully")
}

// InviteQR serves the caller's invite QR code as a PNG image.
func (h *TrainerHandler) InviteQR(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	png, err := h.trainerUC.InviteQR(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
