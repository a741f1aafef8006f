package impl

import (
	"context"
	"testing"

	"coachly/internal/domain/entity"
	domainerrors "coachly/internal/domain/errors"
	"coachly/internal/domain/repository"
	"coachly/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "user not found")
}

func TestProfileService_GetProfile_FindError(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, errors.New("connection refused"))

	user, err := fx.service.GetProfile(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.False(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProfileService_UpdateProfile_UserNotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	fullName := "Jan Nowak"

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{FullName: &fullName})

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProfileService_UpdateProfile_InvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.UpdateProfileInput
		wantMsg string
	}{
		{
			name:    "username with forbidden characters",
			input:   &usecase.UpdateProfileInput{Username: strPtr("jan nowak")},
			wantMsg: "Username can only contain letters, numbers, underscores and dots",
		},
		{
			name:    "too short username",
			input:   &usecase.UpdateProfileInput{Username: strPtr("jn")},
			wantMsg: "Username must be at least 3 characters long",
		},
		{
			name:    "single word full name",
			input:   &usecase.UpdateProfileInput{FullName: strPtr("Jan")},
			wantMsg: "Full name must include both first and last name",
		},
		{
			name:    "phone with too few digits",
			input:   &usecase.UpdateProfileInput{PhoneNumber: strPtr("12 34 5")},
			wantMsg: "Phone number must contain at least 6 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProfileService(t)

			ctx := context.Background()
			userID := uuid.New()

			fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)

			updated, err := fx.service.UpdateProfile(ctx, userID, tt.input)

			require.Error(t, err)
			assert.Nil(t, updated)
			assert.EqualError(t, err, tt.wantMsg)
			fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func strPtr(s string) *string {
	return &s
}

func TestProfileService_UpdateProfile_UsernameTaken(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	username := "jan.nowak"

	fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)
	fx.userRepo.On("FindByUsername", ctx, username).
		Return(&entity.User{ID: uuid.New(), Username: username}, nil)

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Username: &username})

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	assert.Contains(t, err.Error(), "username is already taken")
	fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{CurrentPassword: "Wr0ngPass", NewPassword: "Fresh456pw"}

	fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)
	fx.hasher.On("Verify", input.CurrentPassword, "stored_hash").Return(false, nil)

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	fx.refreshTokenRepo.AssertNotCalled(t, "RevokeAllByUserID", mock.Anything, mock.Anything)
}

func TestProfileService_ChangePassword_CorruptStoredHash(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{CurrentPassword: "Secret123", NewPassword: "Fresh456pw"}

	fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)
	fx.hasher.On("Verify", input.CurrentPassword, "stored_hash").
		Return(false, errors.New("hashedSecret too short to be a bcrypted password"))

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCredentialCorrupted))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestProfileService_ChangePassword_WeakNewPassword(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{CurrentPassword: "Secret123", NewPassword: "weak"}

	fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)
	fx.hasher.On("Verify", input.CurrentPassword, "stored_hash").Return(true, nil)

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.EqualError(t, err, "Password must be at least 8 characters long")
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestProfileService_ChangePassword_UserNotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{CurrentPassword: "Secret123", NewPassword: "Fresh456pw"}

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProfileService_DeleteAccount_WrongPassword(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.DeleteAccountInput{Password: "Wr0ngPass"}

	fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)
	fx.hasher.On("Verify", input.Password, "stored_hash").Return(false, nil)

	err := fx.service.DeleteAccount(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fx.userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProfileService_DeleteAccount_DeleteFails(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.DeleteAccountInput{Password: "Secret123"}

	fx.userRepo.On("FindByID", ctx, userID).Return(existingTestUser(userID), nil)
	fx.hasher.On("Verify", input.Password, "stored_hash").Return(true, nil)
	fx.userRepo.On("Delete", ctx, userID).Return(errors.New("connection refused"))

	err := fx.service.DeleteAccount(ctx, userID, input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete user")
}
