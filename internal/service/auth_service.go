package service

import (
	"errors"
	"time"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/middleware"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 账号认证与管理
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtExpire time.Duration
	logger    *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpire time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
		logger:    logger,
	}
}

// LoginResult 登录结果
type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func validRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleEmployee
}

// Login 校验密码并签发JWT
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperr.Validationf("username and password are required")
	}

	u, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validationf("invalid username or password")
		}
		return nil, apperr.Storage(err, "query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Validationf("invalid username or password")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, apperr.Storage(err, "sign token")
	}

	s.logger.Info("User logged in", zap.String("username", u.Username), zap.String("role", u.Role))

	return &LoginResult{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, nil
}

func (s *AuthService) issueToken(u *entity.User) (string, error) {
	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Register 创建账号
func (s *AuthService) Register(username, password, role string) (*entity.User, error) {
	if username == "" {
		return nil, apperr.Validationf("username is required")
	}
	if len(password) < 6 {
		return nil, apperr.Validationf("password must be at least 6 characters")
	}
	if !validRole(role) {
		return nil, apperr.Validationf("role must be %q or %q", entity.RoleAdmin, entity.RoleEmployee)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err, "hash password")
	}

	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validationf("username %q already exists", username)
		}
		return nil, apperr.Storage(err, "create user")
	}

	s.logger.Info("User registered", zap.String("username", username), zap.String("role", role))
	return u, nil
}

// ChangePassword 重置密码
func (s *AuthService) ChangePassword(username, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.Validationf("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage(err, "hash password")
	}
	if err := s.userRepo.UpdatePassword(username, string(hash)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("user %q not found", username)
		}
		return apperr.Storage(err, "update password")
	}
	return nil
}

// UpdateRole 调整角色
func (s *AuthService) UpdateRole(id, role string) error {
	if !validRole(role) {
		return apperr.Validationf("role must be %q or %q", entity.RoleAdmin, entity.RoleEmployee)
	}
	if err := s.userRepo.UpdateRole(id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("user %s not found", id)
		}
		return apperr.Storage(err, "update role")
	}
	return nil
}

// ListUsers 账号列表
func (s *AuthService) ListUsers() ([]entity.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, apperr.Storage(err, "list users")
	}
	return users, nil
}

// DeleteUser 删除账号
func (s *AuthService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("user %s not found", id)
		}
		return apperr.Storage(err, "delete user")
	}
	return nil
}

// SeedDefaultUsers 初始化默认账号，已存在则跳过
func (s *AuthService) SeedDefaultUsers() error {
	defaults := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", entity.RoleAdmin},
		{"employee", "emp123", entity.RoleEmployee},
	}

	for _, d := range defaults {
		_, err := s.userRepo.GetByUsername(d.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Storage(err, "query default user")
		}
		if _, err := s.Register(d.username, d.password, d.role); err != nil {
			return err
		}
	}
	return nil
}
