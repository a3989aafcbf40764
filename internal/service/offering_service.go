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

// ── 开课与授课分配业务错误 ──

var (
	ErrCourseSemesterNotFound = errors.New("开课不存在")
	ErrCourseSemesterExists   = errors.New("该课程在此学期已开设")
	ErrCourseSemesterAssigned = errors.New("开课已分配教授，无法删除")
	ErrAssignmentNotFound     = errors.New("授课分配不存在")
	ErrAssignmentExists       = errors.New("该开课已分配教授")
	ErrAssignmentInUse        = errors.New("授课分配下仍有选课或评分，无法移除")
)

// OfferingService 开课（课程 × 学期）与授课分配（教授 × 开课）业务接口
type OfferingService interface {
	ListCourseSemesters(ctx context.Context) ([]dto.CourseSemesterResponse, error)
	CreateCourseSemester(ctx context.Context, req *dto.CreateCourseSemesterRequest) (uint, error)
	DeleteCourseSemester(ctx context.Context, id uint) error
	AssignProfessor(ctx context.Context, req *dto.AssignProfessorRequest) (uint, error)
	UnassignProfessor(ctx context.Context, courseSemesterID uint) error
}

type offeringService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOfferingService 创建 OfferingService 实例
func NewOfferingService(repo *repository.Repository, logger *zap.Logger) OfferingService {
	return &offeringService{repo: repo, logger: logger}
}

// ────────────────────── course_semesters ──────────────────────

func (s *offeringService) ListCourseSemesters(ctx context.Context) ([]dto.CourseSemesterResponse, error) {
	rows, err := s.repo.Offering.ListCourseSemesters(ctx)
	if err != nil {
		s.logger.Error("列出开课失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseSemesterResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.CourseSemesterResponse{
			ID:            r.ID,
			CourseID:      r.CourseID,
			CourseName:    r.CourseName,
			SemesterID:    r.SemesterID,
			SemesterName:  r.SemesterName,
			ProfessorID:   r.ProfessorID,
			ProfessorName: r.ProfessorName,
		})
	}
	return result, nil
}

func (s *offeringService) CreateCourseSemester(ctx context.Context, req *dto.CreateCourseSemesterRequest) (uint, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID.Uint()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return 0, err
	}
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID.Uint()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return 0, err
	}

	cs := &model.CourseSemester{
		CourseID:   req.CourseID.Uint(),
		SemesterID: req.SemesterID.Uint(),
	}
	if err := s.repo.Offering.CreateCourseSemester(ctx, cs); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return 0, ErrCourseSemesterExists
		}
		s.logger.Error("创建开课失败", zap.Error(err))
		return 0, err
	}
	return cs.ID, nil
}

func (s *offeringService) DeleteCourseSemester(ctx context.Context, id uint) error {
	if _, err := s.repo.Offering.GetCourseSemester(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseSemesterNotFound
		}
		s.logger.Error("查询开课失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if _, err := s.repo.Offering.GetAssignmentByCourseSemester(ctx, id); err == nil {
		return ErrCourseSemesterAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询授课分配失败", zap.Uint("course_semester_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Offering.DeleteCourseSemester(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrCourseSemesterNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrCourseSemesterAssigned
		}
		s.logger.Error("删除开课失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── professor_course_semesters ──────────────────────

func (s *offeringService) AssignProfessor(ctx context.Context, req *dto.AssignProfessorRequest) (uint, error) {
	if _, err := s.repo.Professor.GetByID(ctx, req.ProfessorID.Uint()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProfessorNotFound
		}
		s.logger.Error("查询教授失败", zap.Error(err))
		return 0, err
	}
	if _, err := s.repo.Offering.GetCourseSemester(ctx, req.CourseSemesterID.Uint()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseSemesterNotFound
		}
		s.logger.Error("查询开课失败", zap.Error(err))
		return 0, err
	}

	// 唯一索引保证一个开课只有一位教授
	pcs := &model.ProfessorCourseSemester{
		ProfessorID:      req.ProfessorID.Uint(),
		CourseSemesterID: req.CourseSemesterID.Uint(),
	}
	if err := s.repo.Offering.CreateAssignment(ctx, pcs); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return 0, ErrAssignmentExists
		}
		s.logger.Error("分配授课教授失败", zap.Error(err))
		return 0, err
	}
	return pcs.ID, nil
}

func (s *offeringService) UnassignProfessor(ctx context.Context, courseSemesterID uint) error {
	pcs, err := s.repo.Offering.GetAssignmentByCourseSemester(ctx, courseSemesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询授课分配失败", zap.Uint("course_semester_id", courseSemesterID), zap.Error(err))
		return err
	}

	enrollments, ratings, err := s.repo.Offering.CountAssignmentDependents(ctx, pcs.ID)
	if err != nil {
		s.logger.Error("统计授课分配依赖失败", zap.Uint("id", pcs.ID), zap.Error(err))
		return err
	}
	if enrollments > 0 || ratings > 0 {
		return ErrAssignmentInUse
	}

	if err := s.repo.Offering.DeleteAssignmentByCourseSemester(ctx, courseSemesterID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrAssignmentNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrAssignmentInUse
		}
		s.logger.Error("移除授课分配失败", zap.Uint("course_semester_id", courseSemesterID), zap.Error(err))
		return err
	}
	return nil
}
