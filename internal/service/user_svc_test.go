package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
)

func setupUserTest(t *testing.T) (*UserService, repository.UserRepository) {
	t.Helper()
	db := setupSyncTestDB(t)
	repo := repository.NewUserRepository(db)
	return NewUserService(repo), repo
}

func seedUser(t *testing.T, repo repository.UserRepository, username, password string, status model.UserStatus) {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	err := repo.Create(context.Background(), &model.SysUser{
		Username: username,
		Password: string(hashed),
		Role:     "admin",
		Status:   status,
	})
	if err != nil {
		t.Fatalf("预置账号失败: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, repo := setupUserTest(t)
	seedUser(t, repo, "admin", "secret123", model.UserStatusActive)

	result, err := svc.Login(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("应返回 token 对")
	}
	if result.User.Username != "admin" {
		t.Errorf("账号信息错误: %s", result.User.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := setupUserTest(t)
	seedUser(t, repo, "admin", "secret123", model.UserStatusActive)

	if _, err := svc.Login(context.Background(), "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际 %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("不存在的账号也应报凭据错误，实际 %v", err)
	}
}

func TestLogin_DisabledUser(t *testing.T) {
	svc, repo := setupUserTest(t)
	seedUser(t, repo, "ghost", "secret123", model.UserStatusDisabled)

	if _, err := svc.Login(context.Background(), "ghost", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("期望 ErrUserDisabled，实际 %v", err)
	}
}

func TestRefreshToken_Flow(t *testing.T) {
	svc, repo := setupUserTest(t)
	seedUser(t, repo, "admin", "secret123", model.UserStatusActive)

	login, err := svc.Login(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新应返回新 access token")
	}

	// access token 不能当 refresh token 用
	if _, err := svc.RefreshToken(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token 冒充 refresh 应被拒，实际 %v", err)
	}
}

func TestEnsureAdmin_SeedsOnce(t *testing.T) {
	svc, repo := setupUserTest(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "bootstrap"); err != nil {
		t.Fatalf("种管理员失败: %v", err)
	}
	// 已有账号时不再重复创建
	if err := svc.EnsureAdmin(ctx, "admin2", "bootstrap"); err != nil {
		t.Fatalf("二次调用不应报错: %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Fatalf("应只有 1 个账号，实际 %d", count)
	}

	if _, err := svc.Login(ctx, "admin", "bootstrap"); err != nil {
		t.Errorf("种下的管理员应可登录: %v", err)
	}
}
