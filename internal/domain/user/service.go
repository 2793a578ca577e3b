package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. 密码加密与验证只在Service中完成
// 2. Service依赖Repository接口，不依赖具体实现
type Service interface {
	// Authenticate 管理员用户名+密码登录
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// FindOrCreateOperator 按姓名查找保洁员，不存在则创建
	FindOrCreateOperator(ctx context.Context, name string) (*User, error)

	// CreateUser 创建用户，管理员必须提供用户名和密码
	CreateUser(ctx context.Context, name, username, password string, role Role) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// bcryptCost 加密强度
const bcryptCost = 12

// Authenticate 管理员登录
// 用户不存在和密码错误返回同一个错误，避免暴露用户名是否存在
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if !u.IsManager() {
		return nil, apperrors.ErrInvalidPassword
	}

	if err := s.ValidatePassword(u.PasswordHash, password); err != nil {
		return nil, err
	}

	return u, nil
}

// FindOrCreateOperator 查找或创建保洁员
// 姓名+角色有唯一索引，并发创建时重新查询一次
func (s *service) FindOrCreateOperator(ctx context.Context, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	u, err := s.repo.FindOperatorByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u, err = NewOperator(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUsernameDuplicate) {
			return s.repo.FindOperatorByName(ctx, name)
		}
		return nil, err
	}
	return u, nil
}

// CreateUser 创建用户
func (s *service) CreateUser(ctx context.Context, name, username, password string, role Role) (*User, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	if role == RoleOperator {
		if username != "" || password != "" {
			return nil, ErrOperatorPassword
		}
		u, err := NewOperator(name)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}

	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u, err := NewManager(name, username, string(hashed))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidatePassword 验证密码
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}

	return nil
}
