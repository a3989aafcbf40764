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

// ── 学期模块业务错误 ──

var (
	ErrSemesterNotFound   = errors.New("学期不存在")
	ErrSemesterNameExists = errors.New("学期名称已存在")
	ErrSemesterInUse      = errors.New("学期下仍有开课，无法删除")
)

// SemesterService 学期业务接口
type SemesterService interface {
	List(ctx context.Context) ([]model.Semester, error)
	Create(ctx context.Context, name string) (uint, error)
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

func (s *semesterService) List(ctx context.Context) ([]model.Semester, error) {
	semesters, err := s.repo.Semester.List(ctx)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}
	return semesters, nil
}

func (s *semesterService) Create(ctx context.Context, name string) (uint, error) {
	name, err := normalizeName(name)
	if err != nil {
		return 0, err
	}

	semester := &model.Semester{Name: name}
	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return 0, ErrSemesterNameExists
		}
		s.logger.Error("创建学期失败", zap.Error(err))
		return 0, err
	}
	return semester.ID, nil
}

func (s *semesterService) Update(ctx context.Context, id uint, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	if err := s.repo.Semester.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrSemesterNotFound
		case pkgerrors.IsUniqueViolation(err):
			return ErrSemesterNameExists
		}
		s.logger.Error("更新学期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *semesterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Semester.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Semester.CountOfferings(ctx, id)
	if err != nil {
		s.logger.Error("统计学期开课数失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrSemesterInUse
	}

	if err := s.repo.Semester.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrSemesterNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrSemesterInUse
		}
		s.logger.Error("删除学期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
