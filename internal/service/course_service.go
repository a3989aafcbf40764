package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
	pkgerrors "profguide/backend/pkg/errors"
)

// 高分课程榜
const (
	topRatedLimit      = 3
	topRatedMinRatings = 3
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound   = errors.New("课程不存在")
	ErrCourseNameExists = errors.New("课程名称已存在")
	ErrCourseInUse      = errors.New("课程仍有开课，无法删除")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	TopRated(ctx context.Context) ([]dto.TopRatedCourse, error)
	// Available 指定学期尚未开设的课程
	Available(ctx context.Context, semesterID uint) ([]model.Course, error)
	Create(ctx context.Context, name string) (uint, error)
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	return courses, nil
}

func (s *courseService) TopRated(ctx context.Context) ([]dto.TopRatedCourse, error) {
	rows, err := s.repo.Course.ListTopRated(ctx, topRatedMinRatings, topRatedLimit)
	if err != nil {
		s.logger.Error("查询高分课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TopRatedCourse, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.TopRatedCourse{
			ID:                r.ID,
			Name:              r.Name,
			AverageQuality:    dto.Round1(r.AverageQuality),
			AverageDifficulty: dto.Round1(r.AverageDifficulty),
			AverageLiking:     dto.Round1(r.AverageLiking),
			NumberOfRatings:   r.NumberOfRatings,
		})
	}
	return result, nil
}

func (s *courseService) Available(ctx context.Context, semesterID uint) ([]model.Course, error) {
	courses, err := s.repo.Course.ListAvailable(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询可开设课程失败", zap.Uint("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	return courses, nil
}

// ────────────────────── 管理 ──────────────────────

func (s *courseService) Create(ctx context.Context, name string) (uint, error) {
	name, err := normalizeName(name)
	if err != nil {
		return 0, err
	}

	course := &model.Course{Name: name}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return 0, ErrCourseNameExists
		}
		s.logger.Error("创建课程失败", zap.Error(err))
		return 0, err
	}
	return course.ID, nil
}

func (s *courseService) Update(ctx context.Context, id uint, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	if err := s.repo.Course.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrCourseNotFound
		case pkgerrors.IsUniqueViolation(err):
			return ErrCourseNameExists
		}
		s.logger.Error("更新课程失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Course.CountOfferings(ctx, id)
	if err != nil {
		s.logger.Error("统计课程开课数失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrCourseInUse
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrCourseNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrCourseInUse
		}
		s.logger.Error("删除课程失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
