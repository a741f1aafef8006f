// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sort"

	"coachly/config"
	deliverycontext "coachly/internal/delivery/context"
	"coachly/internal/domain/entity"
	domainerrors "coachly/internal/domain/errors"
	"coachly/internal/domain/repository"
	"coachly/internal/domain/service"
	"coachly/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Discovery limits used when the search section is absent from the config.
const (
	defaultSearchRadiusKm = 10.0
	defaultMaxRadiusKm    = 100.0
	defaultMaxResults     = 50
)

// trainerService implements the TrainerUsecase interface.
type trainerService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	trainerRepo     repository.TrainerRepository
	qrcodeService   service.QRCodeService
	defaultRadiusKm float64
	maxRadiusKm     float64
	maxResults      int
	logger          *slog.Logger
}

// TrainerServiceParams defines the dependencies for NewTrainerService.
type TrainerServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	TrainerRepo   repository.TrainerRepository
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewTrainerService is the constructor for trainerService.
func NewTrainerService(params TrainerServiceParams) usecase.TrainerUsecase {
	defaultRadius := defaultSearchRadiusKm
	maxRadius := defaultMaxRadiusKm
	maxResults := defaultMaxResults
	if params.Config != nil && params.Config.Search != nil {
		if params.Config.Search.DefaultRadiusKm > 0 {
			defaultRadius = params.Config.Search.DefaultRadiusKm
		}
		if params.Config.Search.MaxRadiusKm > 0 {
			maxRadius = params.Config.Search.MaxRadiusKm
		}
		if params.Config.Search.MaxResults > 0 {
			maxResults = params.Config.Search.MaxResults
		}
	}

	return &trainerService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		trainerRepo:     params.TrainerRepo,
		qrcodeService:   params.QRCodeService,
		defaultRadiusKm: defaultRadius,
		maxRadiusKm:     maxRadius,
		maxResults:      maxResults,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *trainerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpsertOwnProfile creates the trainer profile on first save and edits it
// afterwards. Nil input fields keep their current value; on first save a
// profile starts out accepting new clients.
func (srv *trainerService) UpsertOwnProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpsertTrainerProfileInput) (*entity.TrainerProfile, error) {
	srv.log(ctx).Info("Upserting trainer profile", slog.Any("user_id", userID))

	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	var profile *entity.TrainerProfile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		trainerRepo := repoFactory.TrainerRepo()

		// 1. Only trainer accounts carry a trainer profile
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		if user.Role != entity.RoleTrainer {
			return errors.Wrap(domainerrors.ErrTrainerRoleRequired, "only trainer accounts have a trainer profile")
		}

		// 2. Load the current profile or start a fresh one
		current, err := trainerRepo.FindByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, repository.ErrTrainerProfileNotFound) {
				return errors.Wrap(err, "failed to find trainer profile")
			}

			current = &entity.TrainerProfile{
				UserID:    userID,
				Accepting: true,
			}
		}

		// 3. Apply the requested changes
		applyProfileInput(current, input)

		// 4. Persist
		if err := trainerRepo.Upsert(ctx, current); err != nil {
			return errors.Wrap(err, "failed to save trainer profile")
		}

		profile = current

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to upsert trainer profile", slog.Any("error", err), slog.Any("user_id", userID))

		return nil, err
	}
	srv.log(ctx).Info("Trainer profile saved", slog.Any("user_id", userID))

	return profile, nil
}

// validateProfileInput checks the provided fields of a profile edit. The
// first violation wins.
func validateProfileInput(input *usecase.UpsertTrainerProfileInput) error {
	if input.HourlyRate != nil && *input.HourlyRate < 0 {
		return domainerrors.NewValidationError("Hourly rate cannot be negative")
	}

	if (input.Latitude == nil) != (input.Longitude == nil) {
		return domainerrors.NewValidationError("Latitude and longitude must be provided together")
	}

	if input.Latitude != nil {
		if err := validateCoordinates(*input.Latitude, *input.Longitude); err != nil {
			return err
		}
	}

	return nil
}

// validateCoordinates bounds-checks a WGS84 coordinate pair.
func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return domainerrors.NewValidationError("Latitude must be between -90 and 90")
	}

	if lng < -180 || lng > 180 {
		return domainerrors.NewValidationError("Longitude must be between -180 and 180")
	}

	return nil
}

// applyProfileInput copies every non-nil input field onto the profile.
func applyProfileInput(profile *entity.TrainerProfile, input *usecase.UpsertTrainerProfileInput) {
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Specialty != nil {
		profile.Specialty = *input.Specialty
	}
	if input.HourlyRate != nil {
		profile.HourlyRate = *input.HourlyRate
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.Latitude != nil {
		profile.Latitude = *input.Latitude
		profile.Longitude = *input.Longitude
	}
	if input.Accepting != nil {
		profile.Accepting = *input.Accepting
	}
}

// GetOwnProfile retrieves the trainer profile of the calling user.
func (srv *trainerService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*entity.TrainerProfile, error) {
	srv.log(ctx).Debug("Getting trainer profile", slog.Any("user_id", userID))

	profile, err := srv.trainerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTrainerProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "trainer profile not found")
		}

		return nil, errors.Wrap(err, "failed to get trainer profile")
	}

	return profile, nil
}

// ListTrainers returns the public listings of every trainer currently
// accepting new clients.
func (srv *trainerService) ListTrainers(ctx context.Context) ([]*usecase.TrainerListing, error) {
	srv.log(ctx).Debug("Listing accepting trainers")

	profiles, err := srv.trainerRepo.ListAccepting(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list trainers")
	}

	listings, err := srv.buildListings(ctx, profiles)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("Successfully listed trainers", slog.Int("count", len(listings)))

	return listings, nil
}

// buildListings joins trainer profiles with their account fields. Profiles
// whose account vanished mid-query are skipped rather than failing the list.
func (srv *trainerService) buildListings(ctx context.Context, profiles []*entity.TrainerProfile) ([]*usecase.TrainerListing, error) {
	userIDs := make([]uuid.UUID, 0, len(profiles))
	for _, profile := range profiles {
		userIDs = append(userIDs, profile.UserID)
	}

	users, err := srv.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load trainer accounts")
	}

	usersByID := make(map[uuid.UUID]*entity.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}

	listings := make([]*usecase.TrainerListing, 0, len(profiles))
	for _, profile := range profiles {
		user, ok := usersByID[profile.UserID]
		if !ok {
			continue
		}

		listings = append(listings, &usecase.TrainerListing{
			UserID:     profile.UserID,
			Username:   user.Username,
			FullName:   user.FullName,
			Bio:        profile.Bio,
			Specialty:  profile.Specialty,
			HourlyRate: profile.HourlyRate,
			City:       profile.City,
			Accepting:  profile.Accepting,
		})
	}

	return listings, nil
}

// NearbyTrainers finds accepting trainers around a point, closest first.
// A zero radius falls back to the configured default and the radius is
// capped at the configured maximum.
func (srv *trainerService) NearbyTrainers(ctx context.Context, input *usecase.NearbyTrainersInput) ([]*usecase.NearbyTrainer, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	radiusKm := input.RadiusKm
	if radiusKm <= 0 {
		radiusKm = srv.defaultRadiusKm
	}
	if radiusKm > srv.maxRadiusKm {
		radiusKm = srv.maxRadiusKm
	}
	srv.log(ctx).Debug("Searching nearby trainers",
		slog.Float64("lat", input.Latitude),
		slog.Float64("lng", input.Longitude),
		slog.Float64("radius_km", radiusKm))

	profiles, err := srv.trainerRepo.ListAccepting(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list trainers")
	}

	listings, err := srv.buildListings(ctx, profiles)
	if err != nil {
		return nil, err
	}

	listingsByID := make(map[uuid.UUID]*usecase.TrainerListing, len(listings))
	for _, listing := range listings {
		listingsByID[listing.UserID] = listing
	}

	// The bounding box around the search point rejects far-away trainers
	// before the exact great-circle distance is computed.
	center := orb.Point{input.Longitude, input.Latitude}
	bound := geo.NewBoundAroundPoint(center, radiusKm*1000)

	nearby := make([]*usecase.NearbyTrainer, 0, len(listings))
	for _, profile := range profiles {
		listing, ok := listingsByID[profile.UserID]
		if !ok {
			continue
		}

		// A zero location means the trainer never set one.
		if profile.Latitude == 0 && profile.Longitude == 0 {
			continue
		}

		point := orb.Point{profile.Longitude, profile.Latitude}
		if !bound.Contains(point) {
			continue
		}

		distanceKm := geo.DistanceHaversine(center, point) / 1000
		if distanceKm > radiusKm {
			continue
		}

		nearby = append(nearby, &usecase.NearbyTrainer{
			TrainerListing: *listing,
			DistanceKm:     distanceKm,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if len(nearby) > srv.maxResults {
		nearby = nearby[:srv.maxResults]
	}
	srv.log(ctx).Debug("Nearby trainer search finished", slog.Int("count", len(nearby)))

	return nearby, nil
}

// InviteQR renders the PNG invite code a trainer hands to new clients. The
// encoded link carries the trainer's username.
func (srv *trainerService) InviteQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	srv.log(ctx).Debug("Generating trainer invite QR", slog.Any("user_id", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if user.Role != entity.RoleTrainer {
		return nil, errors.Wrap(domainerrors.ErrTrainerRoleRequired, "only trainers issue invite codes")
	}

	png, err := srv.qrcodeService.GenerateInviteQR(user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate invite qr code")
	}

	return png, nil
}
