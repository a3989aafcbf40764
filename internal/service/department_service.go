package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
	pkgerrors "profguide/backend/pkg/errors"
)

// ── 院系模块业务错误 ──

var (
	ErrNameRequired         = errors.New("名称不能为空")
	ErrDepartmentNotFound   = errors.New("院系不存在")
	ErrDepartmentNameExists = errors.New("院系名称已存在")
	ErrDepartmentInUse      = errors.New("院系下仍有教授，无法删除")
)

// DepartmentService 院系业务接口
type DepartmentService interface {
	List(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, name string) (uint, error)
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("列出院系失败", zap.Error(err))
		return nil, err
	}
	return depts, nil
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, name string) (uint, error) {
	name, err := normalizeName(name)
	if err != nil {
		return 0, err
	}

	dept := &model.Department{Name: name}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return 0, ErrDepartmentNameExists
		}
		s.logger.Error("创建院系失败", zap.Error(err))
		return 0, err
	}
	return dept.ID, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id uint, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	if err := s.repo.Department.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrDepartmentNotFound
		case pkgerrors.IsUniqueViolation(err):
			return ErrDepartmentNameExists
		}
		s.logger.Error("更新院系失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("查询院系失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Department.CountProfessors(ctx, id)
	if err != nil {
		s.logger.Error("统计院系教授数失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrDepartmentInUse
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrDepartmentNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrDepartmentInUse
		}
		s.logger.Error("删除院系失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
