// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"coachly/internal/domain/entity"
	domainerrors "coachly/internal/domain/errors"
	"coachly/internal/domain/repository"
	"coachly/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// trainerRepository implements the domain.TrainerRepository interface using GORM.
type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository is the constructor for trainerRepository.
func NewTrainerRepository(db *gorm.DB) repository.TrainerRepository {
	return &trainerRepository{db: db}
}

// Upsert creates the trainer profile on first save and updates it afterwards.
// The profile table is keyed by user id, so a conflict means the trainer is
// editing an existing profile.
func (repo *trainerRepository) Upsert(ctx context.Context, profile *entity.TrainerProfile) error {
	profileM := fromTrainerProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"bio", "specialty", "hourly_rate", "city",
				"latitude", "longitude", "accepting", "updated_at",
			}),
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("trainer account does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save trainer profile")
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByUserID retrieves the trainer profile of a specific user.
func (repo *trainerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TrainerProfile, error) {
	var profileM model.TrainerProfileModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTrainerProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find trainer profile")
	}

	return toTrainerProfileDomain(&profileM), nil
}

// ListAccepting retrieves the profiles of trainers currently taking new clients.
func (repo *trainerRepository) ListAccepting(ctx context.Context) ([]*entity.TrainerProfile, error) {
	var profileModels []model.TrainerProfileModel
	if err := repo.db.WithContext(ctx).
		Where("accepting = ?", true).
		Order("updated_at DESC").
		Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accepting trainers")
	}

	profiles := make([]*entity.TrainerProfile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, toTrainerProfileDomain(&profileModels[i]))
	}

	return profiles, nil
}

// DeleteByUserID removes the trainer profile of a user. Deleting a user
// without a profile is not an error.
func (repo *trainerRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.TrainerProfileModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete trainer profile")
	}

	return nil
}

// --- Mapper Functions ---

// toTrainerProfileDomain converts a GORM TrainerProfileModel to a domain TrainerProfile entity.
func toTrainerProfileDomain(data *model.TrainerProfileModel) *entity.TrainerProfile {
	if data == nil {
		return nil
	}

	return &entity.TrainerProfile{
		UserID:     data.UserID,
		Bio:        data.Bio,
		Specialty:  data.Specialty,
		HourlyRate: data.HourlyRate,
		City:       data.City,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		Accepting:  data.Accepting,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromTrainerProfileDomain converts a domain TrainerProfile entity to a GORM TrainerProfileModel.
func fromTrainerProfileDomain(data *entity.TrainerProfile) *model.TrainerProfileModel {
	if data == nil {
		return nil
	}

	return &model.TrainerProfileModel{
		UserID:     data.UserID,
		Bio:        data.Bio,
		Specialty:  data.Specialty,
		HourlyRate: data.HourlyRate,
		City:       data.City,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		Accepting:  data.Accepting,
		UpdatedAt:  data.UpdatedAt,
	}
}
