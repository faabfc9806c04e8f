package services

import (
	"context"
	"fmt"
	"time"

	"ticketdesk/internal/status"
	"ticketdesk/models"
	"ticketdesk/utils"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AuthService issues bearer tokens for the admin dashboard. The shared admin
// secret is stored as a bcrypt hash in config; sessions live in redis.
type AuthService struct {
	store      AdminStore
	rdb        *redis.Client
	secretHash string
	sessionTTL time.Duration
}

func NewAuthService(store AdminStore, rdb *redis.Client, secretHash string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		store:      store,
		rdb:        rdb,
		secretHash: secretHash,
		sessionTTL: sessionTTL,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Login verifies the admin email and secret, then issues a session token.
func (s *AuthService) Login(ctx context.Context, email, secret string) (string, *models.Admin, error) {
	admin, err := s.store.FindAdminByEmail(ctx, email)
	if err != nil {
		return "", nil, status.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(secret)); err != nil {
		log.WithField("email", email).Warn("admin login rejected")
		return "", nil, status.ErrInvalidCredentials
	}

	token, err := utils.GenerateCode(24)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(token), admin.Email, s.sessionTTL).Err(); err != nil {
		return "", nil, fmt.Errorf("persist session: %w", err)
	}

	log.WithField("email", email).Info("admin logged in")
	return token, admin, nil
}

// Validate resolves a bearer token to the admin email it was issued for.
func (s *AuthService) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", status.ErrSessionNotFound
	}

	email, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", status.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return email, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
