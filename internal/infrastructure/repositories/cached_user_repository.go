package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/redis/go-redis/v9"
)

// CachedUserRepository is a read-through Redis cache over a UserRepository.
// FindByEmail is served from the cache; every write deletes the cached row,
// so the database stays the only source of truth for OTP state.
type CachedUserRepository struct {
	next   domain.UserRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var errStaleFill = errors.New("user changed during cache fill")

// cachedUser is the JSON form of a user stored in Redis
type cachedUser struct {
	ID           uint       `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password"`
	OTPCode      *string    `json:"otp_code,omitempty"`
	OTPExpiresAt *time.Time `json:"otp_expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewCachedUserRepository wraps next with a Redis cache
func NewCachedUserRepository(next domain.UserRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) domain.UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedUserRepository{
		next:   next,
		client: client,
		prefix: "user:",
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedUserRepository) emailKey(email string) string {
	return r.prefix + "email:" + strings.ToLower(email)
}

func (r *CachedUserRepository) idKey(id uint) string {
	return fmt.Sprintf("%sid:%d", r.prefix, id)
}

// Create implements domain.UserRepository
func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user.ID, user.Email)
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	data, err := r.client.Get(ctx, r.emailKey(email)).Bytes()
	switch {
	case err == nil:
		var cached cachedUser
		if err := json.Unmarshal(data, &cached); err == nil && cached.Email == email {
			return cached.toDomain(), nil
		}
	case !errors.Is(err, redis.Nil):
		r.logger.WarnContext(ctx, "user cache read failed", slog.String("error", err.Error()))
	}

	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "user cache generation read failed", slog.String("error", err.Error()))
	}

	user, err := r.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if gen >= 0 {
		r.store(ctx, user, gen)
	}
	return user, nil
}

// FindByEmailOrUsername implements domain.UserRepository
func (r *CachedUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.next.FindByEmailOrUsername(ctx, email, username)
}

// FindByID implements domain.UserRepository
func (r *CachedUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.next.FindByID(ctx, id)
}

// UpdateOTP implements domain.UserRepository
func (r *CachedUserRepository) UpdateOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	err := r.next.UpdateOTP(ctx, userID, code, expiresAt)
	r.invalidate(ctx, userID, "")
	return err
}

// ClearOTP implements domain.UserRepository
func (r *CachedUserRepository) ClearOTP(ctx context.Context, userID uint) error {
	err := r.next.ClearOTP(ctx, userID)
	r.invalidate(ctx, userID, "")
	return err
}

func (r *CachedUserRepository) genKey() string {
	return r.prefix + "generation"
}

// generation returns the write counter observed before a store read, or -1
// when it cannot be read.
func (r *CachedUserRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, r.genKey()).Int64()
	switch {
	case err == nil:
		return gen, nil
	case errors.Is(err, redis.Nil):
		return 0, nil
	default:
		return -1, err
	}
}

// store caches user only if no write has bumped the generation since gen was
// read, so a slow read never puts an overwritten row back.
func (r *CachedUserRepository) store(ctx context.Context, user *domain.User, gen int64) {
	data, err := json.Marshal(fromDomain(user))
	if err != nil {
		return
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, r.genKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.emailKey(user.Email), data, r.ttl)
			pipe.Set(ctx, r.idKey(user.ID), user.Email, r.ttl)
			return nil
		})
		return err
	}, r.genKey())

	switch {
	case err == nil, errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
	default:
		r.logger.WarnContext(ctx, "user cache write failed", slog.String("error", err.Error()))
	}
}

// invalidate drops the cached row for a user. The generation is bumped before
// the id index is read so that a fill racing this write either fails or has
// already written the index. The email is looked up through the id index when
// the caller does not know it.
func (r *CachedUserRepository) invalidate(ctx context.Context, userID uint, email string) {
	if err := r.client.Incr(ctx, r.genKey()).Err(); err != nil {
		r.logger.WarnContext(ctx, "user cache generation bump failed", slog.String("error", err.Error()))
	}

	if email == "" {
		indexed, err := r.client.Get(ctx, r.idKey(userID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "user cache index read failed", slog.String("error", err.Error()))
		}
		email = indexed
	}

	keys := []string{r.idKey(userID)}
	if email != "" {
		keys = append(keys, r.emailKey(email))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.WarnContext(ctx, "user cache invalidation failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()))
	}
}

func fromDomain(u *domain.User) *cachedUser {
	return &cachedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		OTPCode:      u.OTPCode,
		OTPExpiresAt: u.OTPExpiresAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c *cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           c.ID,
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		OTPCode:      c.OTPCode,
		OTPExpiresAt: c.OTPExpiresAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
