package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(50);unique;not null"`
	Email        string    `gorm:"type:varchar(100);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	PhoneNumber  string    `gorm:"type:varchar(20);not null"`
	Role         string    `gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	TrainerProfile *TrainerProfileModel `gorm:"foreignKey:UserID"`
	RefreshTokens  []RefreshTokenModel  `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// TrainerProfileModel mirrors the 'trainer_profiles' table. UserID references users.id (UUID).
type TrainerProfileModel struct {
	UserID     uuid.UUID `gorm:"primaryKey"`
	Bio        string    `gorm:"type:text"`
	Specialty  string    `gorm:"type:varchar(100)"`
	HourlyRate int
	City       string `gorm:"type:varchar(100)"`
	Latitude   float64
	Longitude  float64
	Accepting  bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (TrainerProfileModel) TableName() string {
	return "trainer_profiles"
}
