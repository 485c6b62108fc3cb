package service

import (
	"errors"
	"fitacademy_backend/internal/config"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/util"
	"testing"
	"time"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(env.db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user := &model.User{
		Name:     "测试会员",
		Email:    "member@example.com",
		Password: "secret-password",
		Role:     model.Admin, // 注册不允许自封管理员
	}
	if err := auth.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Member {
		t.Errorf("role = %q, want member", user.Role)
	}
	if user.Password == "secret-password" {
		t.Error("password stored in plaintext")
	}

	token, err := auth.Login("member@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret!")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Member {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	first := &model.User{Name: "甲", Email: "dup@example.com", Password: "password-1"}
	if err := auth.Register(first); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := &model.User{Name: "乙", Email: "dup@example.com", Password: "password-2"}
	if err := auth.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user := &model.User{Name: "测试会员", Email: "member@example.com", Password: "secret-password"}
	if err := auth.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login("member@example.com", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := auth.Login("nobody@example.com", "secret-password"); err == nil {
		t.Error("unknown email accepted")
	}

	if err := env.db.Model(&model.User{}).Where("id = ?", user.ID).
		Update("disabled", true).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if _, err := auth.Login("member@example.com", "secret-password"); err == nil {
		t.Error("disabled account accepted")
	}
}
