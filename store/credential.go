// Package store is the operation layer shared by the REST and GraphQL
// adapters. It owns validation, ownership checks and persistence
package store

import (
	"errors"

	"feedhub/social-api/apperr"
	"feedhub/social-api/model"
	"feedhub/social-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultStatus is the greeting every fresh account starts with
const DefaultStatus = "I am new!"

// invalidCredentials is shared by the unknown-email and wrong-password
// cases so a caller can't tell which one happened
func invalidCredentials() *apperr.Error {
	return apperr.New(apperr.InvalidCredentials, "Invalid email or password")
}

// Credentials manages user records and secret verification
type Credentials struct {
	DB *gorm.DB
}

func NewCredentials(db *gorm.DB) *Credentials {
	return &Credentials{DB: db}
}

// Create registers a new user. The password is hashed before anything is
// persisted, plaintext never reaches the database
func (s *Credentials) Create(email, name, password string) (*model.User, error) {
	var taken bool

	err := s.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&taken).
		Error
	if err != nil {
		zap.L().Error("Failed to check if email is registered", zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	if taken {
		return nil, apperr.New(apperr.AlreadyExists, "This email is already registered")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	id, err := gonanoid.Generate(userIDAlphabet, 16)
	if err != nil {
		return nil, apperr.Wrap(err, "Internal server error")
	}

	user := &model.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Status:       DefaultStatus,
	}

	if err := s.DB.Create(user).Error; err != nil {
		zap.L().Error("Failed to create user", zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	return user, nil
}

// VerifySecret checks a login attempt. Unknown email and wrong password
// fail with the exact same error
func (s *Credentials) VerifySecret(email, password string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}

		zap.L().Error("Failed to look up user", zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, invalidCredentials()
	}

	return &user, nil
}

// Get returns a user by ID. A valid token for a since-deleted user lands
// here and gets NotFound
func (s *Credentials) Get(userID string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "This user does not exist")
		}

		zap.L().Error("Failed to look up user", zap.Error(err))
		return nil, apperr.Wrap(err, "Internal server error")
	}

	return &user, nil
}

func (s *Credentials) GetStatus(userID string) (string, error) {
	user, err := s.Get(userID)
	if err != nil {
		return "", err
	}

	return user.Status, nil
}

func (s *Credentials) SetStatus(userID, status string) error {
	res := s.DB.Model(model.User{}).
		Where("id = ?", userID).
		Update("status", status)
	if res.Error != nil {
		zap.L().Error("Failed to update user status", zap.Error(res.Error))
		return apperr.Wrap(res.Error, "Internal server error")
	}

	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "This user does not exist")
	}

	return nil
}
