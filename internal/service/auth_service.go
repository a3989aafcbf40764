package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"profguide/backend/config"
	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
	"profguide/backend/pkg/jwt"
	pkgerrors "profguide/backend/pkg/errors"
)

// ── 认证模块业务错误 ──

var (
	ErrEmailDomainNotAllowed = errors.New("邮箱域名不允许")
	ErrEmailNotEnrolled      = errors.New("邮箱无选课记录")
	ErrEmailRegistered       = errors.New("邮箱已注册")
	ErrInvalidCredentials    = errors.New("邮箱或密码错误")
	ErrUserNotFound          = errors.New("用户不存在")
)

// EmailDomainError 邮箱不属于允许的域名
type EmailDomainError struct {
	Domain string
}

func (e *EmailDomainError) Error() string {
	return "邮箱必须以 @" + e.Domain + " 结尾"
}

// Unwrap 支持 errors.Is(err, ErrEmailDomainNotAllowed)
func (e *EmailDomainError) Unwrap() error { return ErrEmailDomainNotAllowed }

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

// checkDomain 校验邮箱域名（本地部分不能为空）
func (s *authService) checkDomain(email string) error {
	domain := s.cfg.Auth.EmailDomain
	suffix := "@" + domain
	if !strings.HasSuffix(email, suffix) || len(email) == len(suffix) {
		return &EmailDomainError{Domain: domain}
	}
	return nil
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	// 1. 域名校验
	if err := s.checkDomain(email); err != nil {
		return nil, err
	}

	// 2. 必须已有选课记录
	enrolled, err := s.repo.Enrollment.ExistsForEmail(ctx, email)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return nil, err
	}
	if !enrolled {
		return nil, ErrEmailNotEnrolled
	}

	// 3. 邮箱唯一
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 4. 哈希密码并创建用户
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(req.DisplayName),
		University:  model.DefaultUniversity,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// 并发注册同一邮箱
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrEmailRegistered
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户注册成功", zap.Uint("user_id", user.ID))

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	// 1. 域名校验
	if err := s.checkDomain(email); err != nil {
		return nil, err
	}

	// 2. 查询用户；管理员跳过选课校验
	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if user == nil || !user.IsAdmin {
		enrolled, err := s.repo.Enrollment.ExistsForEmail(ctx, email)
		if err != nil {
			s.logger.Error("查询选课记录失败", zap.Error(err))
			return nil, err
		}
		if !enrolled {
			return nil, ErrEmailNotEnrolled
		}
	}

	// 3. 验证密码 (bcrypt)
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 4. 生成 Token
	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	isAdmin := user.IsAdmin
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			IsAdmin:     &isAdmin,
		},
	}, nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("id", userID), zap.Error(err))
		return nil, err
	}

	isAdmin := user.IsAdmin
	return &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     &isAdmin,
	}, nil
}

func (s *authService) bcryptCost() int {
	if c := s.cfg.Auth.BcryptCost; c >= bcrypt.MinCost && c <= bcrypt.MaxCost {
		return c
	}
	return bcrypt.DefaultCost
}
