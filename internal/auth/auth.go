package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"room-booking-backend/internal/model"
)

// Service manages user accounts and session tokens. Sessions are
// opaque random tokens held in an in-memory TTL cache; restarting the
// process logs everyone out.
type Service struct {
	db       *gorm.DB
	sessions *cache.Cache
	cost     int
	ttl      time.Duration
}

// NewService creates an auth service backed by the given database.
func NewService(db *gorm.DB, bcryptCost int, sessionTTL time.Duration) *Service {
	return &Service{
		db:       db,
		sessions: cache.New(sessionTTL, 10*time.Minute),
		cost:     bcryptCost,
		ttl:      sessionTTL,
	}
}

// Register creates a new user account. The username must be unused.
func (s *Service) Register(ctx context.Context, username, password, firstName, email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		Email:        email,
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check username %s: %w", username, err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", username, err)
		}
		return nil
	})
}

// Login verifies the credentials and returns a fresh session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateTokenHex(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	s.sessions.Set(token, user.Username, s.ttl)
	return token, nil
}

// Logout invalidates a session token. Unknown tokens are ignored.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

// Username resolves a session token to the logged-in username.
func (s *Service) Username(token string) (string, bool) {
	v, found := s.sessions.Get(token)
	if !found {
		return "", false
	}
	return v.(string), true
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
