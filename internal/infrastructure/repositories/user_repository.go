package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return storeError(err)
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByEmailOrUsername implements domain.UserRepository with a single OR query
func (r *UserRepositoryImpl) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.first(ctx, "email = ? OR username = ?", email, username)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// UpdateOTP implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	return r.updateOTP(ctx, userID, map[string]interface{}{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
	})
}

// ClearOTP implements domain.UserRepository
func (r *UserRepositoryImpl) ClearOTP(ctx context.Context, userID uint) error {
	return r.updateOTP(ctx, userID, map[string]interface{}{
		"otp_code":       nil,
		"otp_expires_at": nil,
	})
}

// updateOTP writes both otp columns in one statement
func (r *UserRepositoryImpl) updateOTP(ctx context.Context, userID uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) first(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		OTPCode:      user.OTPCode,
		OTPExpiresAt: user.OTPExpiresAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		OTPCode:      dbUser.OTPCode,
		OTPExpiresAt: dbUser.OTPExpiresAt,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
