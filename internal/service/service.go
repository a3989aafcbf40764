package service

import (
	"strings"

	"go.uber.org/zap"

	"profguide/backend/config"
	"profguide/backend/internal/repository"
	"profguide/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Department DepartmentService
	Professor  ProfessorService
	Course     CourseService
	Semester   SemesterService
	Offering   OfferingService
	Enrollment EnrollmentService
	Rating     RatingService
	Tag        TagService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, logger),
		Department: NewDepartmentService(repo, logger),
		Professor:  NewProfessorService(repo, logger),
		Course:     NewCourseService(repo, logger),
		Semester:   NewSemesterService(repo, logger),
		Offering:   NewOfferingService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Rating:     NewRatingService(repo, logger),
		Tag:        NewTagService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}

// NormalizeEmail 去除首尾空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName 名称去除首尾空白，空名称返回 ErrNameRequired
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}
