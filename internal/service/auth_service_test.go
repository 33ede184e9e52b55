package service

import (
	"errors"
	"testing"
	"time"

	"podquest_backend/internal/config"
	"podquest_backend/internal/util"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(env.users, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	resp, err := svc.Register(RegisterRequest{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("register must return a token")
	}
	if resp.User.Level != 0 {
		t.Fatalf("new user level = %d, want 0", resp.User.Level)
	}

	claims, err := util.ParseJWT(resp.Token, "test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("claims user = %d, want %d", claims.UserID, resp.User.ID)
	}

	login, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatalf("login user = %d, want %d", login.User.ID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	req := RegisterRequest{DisplayName: "Alice", Email: "alice@example.com", Password: "correct horse"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	if _, err := svc.Register(RegisterRequest{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Password:    "correct horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}
