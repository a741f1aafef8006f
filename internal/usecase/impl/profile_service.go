// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"coachly/internal/domain/entity"
	domainerrors "coachly/internal/domain/errors"
	"coachly/internal/domain/repository"
	"coachly/internal/domain/service"
	"coachly/internal/domain/validation"
	"coachly/internal/usecase"
	"coachly/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		logger:    logger,
	}
}

// GetProfile retrieves the account owned by userID.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.logger.Debug("Getting user profile", "userID", userID)

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of input to the account. Each
// changed field passes the same validation as registration, and a changed
// username must still be unique.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating user profile", "userID", userID)

	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Load the current state of the account.
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// 2. Validate and apply each requested change.
		if input.Username != nil && *input.Username != user.Username {
			if err := validation.Username(*input.Username); err != nil {
				return err
			}

			existing, err := userRepo.FindByUsername(ctx, *input.Username)
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check username availability")
			}
			if existing != nil && existing.ID != userID {
				return domainerrors.ErrUserAlreadyExists.WrapMessage("username is already taken")
			}

			user.Username = *input.Username
		}

		if input.FullName != nil && *input.FullName != user.FullName {
			if err := validation.FullName(*input.FullName); err != nil {
				return err
			}

			user.FullName = *input.FullName
		}

		if input.PhoneNumber != nil && *input.PhoneNumber != user.PhoneNumber {
			if err := validation.PhoneNumber(*input.PhoneNumber); err != nil {
				return err
			}

			srv.logger.Debug("Changing phone number", "userID", userID, "phone", util.MaskPhone(*input.PhoneNumber))
			user.PhoneNumber = *input.PhoneNumber
		}

		// 3. Persist the updated account.
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("User profile updated", "userID", userID)

	return updated, nil
}

// ChangePassword replaces the account password after verifying the current
// one. Every active session is revoked so stolen refresh tokens die with the
// old password.
func (srv *profileService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing account password", "userID", userID)

	// 1. Load the account and check the current password outside the
	// transaction, bcrypt comparison is CPU-bound.
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}

	match, err := srv.hasher.Verify(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		srv.logger.Error("Stored password hash is corrupted", "userID", userID, "error", err)

		return errors.Wrap(domainerrors.ErrCredentialCorrupted, "change password failed")
	}
	if !match {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password is incorrect")
	}

	// 2. The new password must satisfy the same policy as registration.
	if err := validation.Password(input.NewPassword); err != nil {
		return err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	// 3. Persist the new hash and end every session in one transaction.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshTokenRepo := repoFactory.RefreshTokenRepo()

		fresh, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		fresh.PasswordHash = newHash
		if err := userRepo.Update(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		if err := refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke active sessions")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.logger.Info("Account password changed, all sessions revoked", "userID", userID)

	return nil
}

// DeleteAccount permanently removes the account after re-verifying the
// password. Sessions and the trainer profile are removed with it.
func (srv *profileService) DeleteAccount(ctx context.Context, userID uuid.UUID, input *usecase.DeleteAccountInput) error {
	srv.logger.Info("Deleting account", "userID", userID)

	// 1. Destructive operation, so the caller must prove possession of the
	// password even with a valid access token.
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}

	match, err := srv.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		srv.logger.Error("Stored password hash is corrupted", "userID", userID, "error", err)

		return errors.Wrap(domainerrors.ErrCredentialCorrupted, "delete account failed")
	}
	if !match {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "password is incorrect")
	}

	// 2. Remove the account and everything attached to it.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Delete(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute account deletion transaction")
	}

	srv.logger.Info("Account deleted", "userID", userID)

	return nil
}
