// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"coachly/config"
	deliverycontext "coachly/internal/delivery/context"
	"coachly/internal/domain/entity"
	domainerrors "coachly/internal/domain/errors"
	"coachly/internal/domain/repository"
	"coachly/internal/domain/service"
	"coachly/internal/domain/validation"
	"coachly/internal/usecase"
	"coachly/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	maxActiveSessions int
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	maxActiveSessions := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", util.MaskEmail(input.Email)))

	// 1. Validate every field before touching storage. The first violated
	// rule is returned verbatim to the client.
	role, err := validateRegistrationInput(input)
	if err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.String("email", util.MaskEmail(input.Email)), slog.Any("error", err))

		return nil, err
	}

	// 2. Hash the password outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	// 3. Check uniqueness and insert inside one transaction.
	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := checkAccountAvailability(ctx, userRepo, input.Email, input.Username); err != nil {
			return err
		}

		newUser := &entity.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			FullName:     input.FullName,
			PhoneNumber:  input.PhoneNumber,
			Role:         role,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", util.MaskEmail(input.Email)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID), slog.String("role", registeredUser.Role.String()))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// validateRegistrationInput runs the field validators in a fixed order and
// returns the normalized role. The first violation wins, so clients always
// see one deterministic message for the same input.
func validateRegistrationInput(input *usecase.RegisterInput) (entity.Role, error) {
	if err := validation.Username(input.Username); err != nil {
		return "", err
	}
	if err := validation.Email(input.Email); err != nil {
		return "", err
	}
	if err := validation.Password(input.Password); err != nil {
		return "", err
	}
	if err := validation.PhoneNumber(input.PhoneNumber); err != nil {
		return "", err
	}
	if err := validation.FullName(input.FullName); err != nil {
		return "", err
	}
	role, err := validation.Role(input.Role)
	if err != nil {
		return "", err
	}

	return entity.Role(role), nil
}

// checkAccountAvailability rejects a registration when the email or the
// username is already taken.
func checkAccountAvailability(ctx context.Context, userRepo repository.UserRepository, email, username string) error {
	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email is already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	if _, err := userRepo.FindByUsername(ctx, username); err == nil {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("username is already taken")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username availability")
	}

	return nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", util.MaskEmail(input.Email)))

	// 1. Load the account. A missing account and a wrong password produce
	// the same client-facing error.
	loggedInUser, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", util.MaskEmail(input.Email)), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// 2. Check the password outside any transaction (bcrypt is CPU-bound).
	// A stored hash that cannot be parsed is a server fault and must not
	// read as a wrong password.
	match, err := srv.hasher.Verify(input.Password, loggedInUser.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored credential could not be verified", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrCredentialCorrupted, "login failed")
	}
	if !match {
		srv.log(ctx).Warn("Login failed", slog.String("email", util.MaskEmail(input.Email)), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// 3. Generate new tokens.
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(loggedInUser.ID, entity.Roles{loggedInUser.Role}.ToStrings())
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// 4. Store the refresh token as a new session.
	if err := srv.persistRefreshToken(ctx, loggedInUser.ID, refreshTokenString, input.DeviceInfo); err != nil {
		srv.log(ctx).Error("Failed to store session", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create refresh token during login")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// persistRefreshToken stores the hash of a fresh refresh token as a new
// session. When the per-user session limit is reached the oldest sessions
// are evicted instead of failing the login.
func (srv *userService) persistRefreshToken(ctx context.Context, userID uuid.UUID, refreshTokenString, deviceInfo string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		if srv.maxActiveSessions > 0 {
			active, err := refreshRepo.FindActiveByUserID(ctx, userID)
			if err != nil {
				return errors.Wrap(err, "failed to load active sessions")
			}

			// Oldest sessions come first; evict from the front until the
			// new session fits under the limit.
			for excess := len(active) - srv.maxActiveSessions + 1; excess > 0; excess-- {
				oldest := active[0]
				active = active[1:]
				if err := refreshRepo.RevokeRefreshToken(ctx, oldest.ID); err != nil {
					return errors.Wrap(err, "failed to evict oldest session")
				}
				srv.log(ctx).Info("Evicted oldest session to enforce session limit", slog.Any("userID", userID), slog.Any("sessionID", oldest.ID))
			}
		}

		newRefreshToken := &entity.RefreshToken{
			UserID:     userID,
			TokenHash:  srv.tokenService.HashToken(refreshTokenString),
			DeviceInfo: deviceInfo,
			ExpiresAt:  time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
		}

		if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		return nil
	})
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
// The presented token is revoked in the same transaction, so each refresh
// token can be redeemed once.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	// 1. Verify signature and shape before touching storage.
	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}
	if claims.Type != "refresh" {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "token is not a refresh token")
	}

	var output *usecase.RefreshTokenOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		// 2. The token must still exist as a live session.
		tokenHash := srv.tokenService.HashToken(input.RefreshToken)
		storedToken, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
				return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
			}

			return errors.Wrap(err, "failed to load refresh token")
		}
		if storedToken.RevokedAt != nil {
			// A revoked token coming back means it leaked or a client
			// replayed an old one. End every session as a precaution.
			srv.log(ctx).Warn("Revoked refresh token replayed", slog.Any("userID", storedToken.UserID))
			if err := refreshRepo.RevokeAllByUserID(ctx, storedToken.UserID); err != nil {
				return errors.Wrap(err, "failed to revoke sessions after token replay")
			}

			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token was revoked")
		}

		// 3. Fetch the account so the new access token carries current roles.
		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		// 4. Rotate: revoke the redeemed session, then issue and store a
		// replacement.
		if err := refreshRepo.RevokeRefreshToken(ctx, storedToken.ID); err != nil {
			return errors.Wrap(err, "failed to revoke redeemed refresh token")
		}

		accessToken, newRefreshToken, err := srv.tokenService.GenerateTokens(user.ID, entity.Roles{user.Role}.ToStrings())
		if err != nil {
			return errors.Wrap(err, "failed to generate new tokens")
		}

		deviceInfo := input.DeviceInfo
		if deviceInfo == "" {
			deviceInfo = storedToken.DeviceInfo
		}
		replacement := &entity.RefreshToken{
			UserID:     user.ID,
			TokenHash:  srv.tokenService.HashToken(newRefreshToken),
			DeviceInfo: deviceInfo,
			ExpiresAt:  time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
		}
		if err := refreshRepo.CreateRefreshToken(ctx, replacement); err != nil {
			return errors.Wrap(err, "failed to store rotated refresh token")
		}

		output = &usecase.RefreshTokenOutput{
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to refresh tokens", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh token transaction")
	}

	return output, nil
}

// Logout ends the session belonging to the presented refresh token.
// Logging out an unknown or already ended session succeeds silently.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateToken(input.RefreshToken); err != nil {
		// Even when the token no longer verifies, drop the stored session.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	// Single lookup plus revoke - use direct repository instances.
	tokenRecord, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil
		}

		return errors.Wrap(err, "failed to load refresh token for logout")
	}

	if err := srv.refreshTokenRepo.RevokeRefreshToken(ctx, tokenRecord.ID); err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}
