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

// ── 选课模块业务错误 ──

var (
	ErrEnrollmentNotFound  = errors.New("选课记录不存在")
	ErrEnrollmentExists    = errors.New("该学生已在此授课分配中")
	ErrEnrollmentHasRating = errors.New("该学生已提交评分，无法移除选课")
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	Verify(ctx context.Context, assignmentID uint, email string) (bool, error)
	Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (uint, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]dto.EnrollmentResponse, error)
	Delete(ctx context.Context, assignmentID uint, email string) error
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

func (s *enrollmentService) Verify(ctx context.Context, assignmentID uint, email string) (bool, error) {
	ok, err := s.repo.Enrollment.Exists(ctx, assignmentID, NormalizeEmail(email))
	if err != nil {
		s.logger.Error("校验选课失败", zap.Uint("assignment_id", assignmentID), zap.Error(err))
		return false, err
	}
	return ok, nil
}

func (s *enrollmentService) Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (uint, error) {
	if _, err := s.repo.Offering.GetAssignment(ctx, req.ProfessorCourseSemesterID.Uint()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAssignmentNotFound
		}
		s.logger.Error("查询授课分配失败", zap.Error(err))
		return 0, err
	}

	enrollment := &model.Enrollment{
		ProfessorCourseSemesterID: req.ProfessorCourseSemesterID.Uint(),
		StudentEmail:              NormalizeEmail(req.StudentEmail),
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return 0, ErrEnrollmentExists
		}
		s.logger.Error("创建选课失败", zap.Error(err))
		return 0, err
	}
	return enrollment.ID, nil
}

func (s *enrollmentService) ListByAssignment(ctx context.Context, assignmentID uint) ([]dto.EnrollmentResponse, error) {
	rows, err := s.repo.Enrollment.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("列出选课失败", zap.Uint("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrollmentResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.EnrollmentResponse{
			ID:                        r.ID,
			ProfessorCourseSemesterID: r.ProfessorCourseSemesterID,
			StudentEmail:              r.StudentEmail,
			CourseName:                r.CourseName,
			SemesterName:              r.SemesterName,
			ProfessorName:             r.ProfessorName,
		})
	}
	return result, nil
}

func (s *enrollmentService) Delete(ctx context.Context, assignmentID uint, email string) error {
	email = NormalizeEmail(email)

	rated, err := s.repo.Rating.Exists(ctx, assignmentID, email)
	if err != nil {
		s.logger.Error("查询评分失败", zap.Error(err))
		return err
	}
	if rated {
		return ErrEnrollmentHasRating
	}

	if err := s.repo.Enrollment.Delete(ctx, assignmentID, email); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrEnrollmentNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrEnrollmentHasRating
		}
		s.logger.Error("删除选课失败", zap.Error(err))
		return err
	}
	return nil
}
