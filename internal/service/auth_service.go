package service

import (
	"context"
	"fmt"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminStore resolves admin accounts for authentication.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
}

// AuthService authenticates administrators and owns their sessions.
// Sessions are opaque random tokens held in a TTL store; the token value
// maps to the admin id.
type AuthService struct {
	admins   AdminStore
	sessions *cache.Cache
	logger   *zap.Logger
}

func NewAuthService(admins AdminStore, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: cache.New(sessionTTL, 2*sessionTTL),
		logger:   logger,
	}
}

// Login verifies the credentials and establishes a session, returning
// its token. Unknown user and wrong password both come back as
// ErrAuthFailure; the caller cannot tell which.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("get admin: %w", err)
	}

	if admin == nil {
		// Burn a comparison anyway so the timing matches the miss path.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000000000000000000000000000000000"), []byte(password))
		return "", ErrAuthFailure
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrAuthFailure
	}

	token := uuid.NewString()
	s.sessions.SetDefault(token, admin.ID)

	s.logger.Info("Admin logged in",
		zap.Int64("admin_id", admin.ID),
		zap.String("usuario", admin.Username),
	)

	return token, nil
}

// Validate reports whether the token belongs to an active session.
func (s *AuthService) Validate(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}

	v, found := s.sessions.Get(token)
	if !found {
		return 0, false
	}

	adminID, ok := v.(int64)
	return adminID, ok
}

// Logout drops the session unconditionally, valid or not.
func (s *AuthService) Logout(token string) {
	s.sessions.Delete(token)
}
