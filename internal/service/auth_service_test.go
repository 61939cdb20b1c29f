package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminStore struct {
	admins map[string]*model.Admin
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	return f.admins[username], nil
}

func newTestAuth(t *testing.T, password string) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	store := &fakeAdminStore{admins: map[string]*model.Admin{
		"admin": {ID: 7, Username: "admin", PasswordHash: string(hash)},
	}}

	return NewAuthService(store, time.Minute, zap.NewNop())
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestAuth(t, "secreta123")
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "secreta123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login must return a token")
	}

	adminID, ok := svc.Validate(token)
	if !ok || adminID != 7 {
		t.Errorf("validate: want (7, true), got (%d, %v)", adminID, ok)
	}

	// Each login is its own session.
	second, err := svc.Login(ctx, "admin", "secreta123")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second == token {
		t.Error("tokens must not repeat across logins")
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newTestAuth(t, "secreta123")
	ctx := context.Background()

	if _, err := svc.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("wrong password: want ErrAuthFailure, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "secreta123"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("unknown user: want ErrAuthFailure, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestAuth(t, "secreta123")

	if _, ok := svc.Validate(""); ok {
		t.Error("empty token must not validate")
	}
	if _, ok := svc.Validate("not-a-session"); ok {
		t.Error("unknown token must not validate")
	}
}

func TestLogout(t *testing.T) {
	svc := newTestAuth(t, "secreta123")
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "secreta123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.Logout(token)
	if _, ok := svc.Validate(token); ok {
		t.Error("token must be dead after logout")
	}

	// Logging out twice is fine.
	svc.Logout(token)
	svc.Logout("never-existed")
}
