package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
	pkgerrors "profguide/backend/pkg/errors"
)

const underratedLimit = 3

// ── 教授模块业务错误 ──

var (
	ErrProfessorNotFound = errors.New("教授不存在")
	ErrProfessorInUse    = errors.New("教授仍有授课分配，无法删除")
)

// ProfessorService 教授业务接口
type ProfessorService interface {
	Search(ctx context.Context, term string) ([]dto.ProfessorSummary, error)
	Underrated(ctx context.Context) ([]dto.UnderratedProfessor, error)
	GetDetail(ctx context.Context, id uint) (*dto.ProfessorDetailResponse, error)
	ListOfferings(ctx context.Context, id uint) ([]dto.ProfessorOfferingItem, error)
	RatingDistribution(ctx context.Context, id uint) (*dto.RatingDistributionResponse, error)
	// TagDistribution filter 完整时实时统计该开课的标签，否则返回预计算汇总
	TagDistribution(ctx context.Context, id uint, filter dto.OfferingFilter) ([]dto.TagCountResponse, error)
	RecordView(ctx context.Context, id uint) error

	// ── 管理端 ──
	ListAdmin(ctx context.Context) ([]dto.AdminProfessorResponse, error)
	// Available 未分配到指定开课的教授
	Available(ctx context.Context, courseSemesterID uint) ([]model.Professor, error)
	Create(ctx context.Context, req *dto.SaveProfessorRequest) (uint, error)
	Update(ctx context.Context, id uint, req *dto.SaveProfessorRequest) error
	Delete(ctx context.Context, id uint) error
}

type professorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfessorService 创建 ProfessorService 实例
func NewProfessorService(repo *repository.Repository, logger *zap.Logger) ProfessorService {
	return &professorService{repo: repo, logger: logger}
}

func toProfessorSummary(r repository.ProfessorStats) dto.ProfessorSummary {
	return dto.ProfessorSummary{
		ID:              r.ID,
		Name:            r.Name,
		Department:      r.Department,
		University:      r.University,
		AverageRating:   dto.Round1(r.AverageRating),
		NumberOfRatings: r.NumberOfRatings,
	}
}

// ────────────────────── Search ──────────────────────

func (s *professorService) Search(ctx context.Context, term string) ([]dto.ProfessorSummary, error) {
	rows, err := s.repo.Professor.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		s.logger.Error("搜索教授失败", zap.String("term", term), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProfessorSummary, 0, len(rows))
	for _, r := range rows {
		result = append(result, toProfessorSummary(r))
	}
	return result, nil
}

// ────────────────────── Underrated ──────────────────────

func (s *professorService) Underrated(ctx context.Context) ([]dto.UnderratedProfessor, error) {
	rows, err := s.repo.Professor.ListUnderrated(ctx, underratedLimit)
	if err != nil {
		s.logger.Error("查询冷门教授失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UnderratedProfessor, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.UnderratedProfessor{
			ProfessorSummary: toProfessorSummary(r),
			ViewCount:        r.ViewCount,
		})
	}
	return result, nil
}

// ────────────────────── Detail ──────────────────────

func (s *professorService) GetDetail(ctx context.Context, id uint) (*dto.ProfessorDetailResponse, error) {
	stats, err := s.repo.Professor.GetStats(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		s.logger.Error("查询教授详情失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	offerings, err := s.repo.Professor.ListOfferings(ctx, id)
	if err != nil {
		s.logger.Error("查询教授授课失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	items := make([]dto.CourseSemesterItem, 0, len(offerings))
	for _, o := range offerings {
		items = append(items, dto.CourseSemesterItem{
			CourseID:         o.CourseID,
			CourseName:       o.CourseName,
			SemesterID:       o.SemesterID,
			SemesterName:     o.SemesterName,
			CourseSemesterID: o.CourseSemesterID,
		})
	}

	return &dto.ProfessorDetailResponse{
		ID:              stats.ID,
		Name:            stats.Name,
		DepartmentID:    stats.DepartmentID,
		Department:      stats.Department,
		University:      stats.University,
		AverageRating:   dto.Round1(stats.AverageRating),
		NumberOfRatings: stats.NumberOfRatings,
		CourseSemesters: items,
	}, nil
}

func (s *professorService) ListOfferings(ctx context.Context, id uint) ([]dto.ProfessorOfferingItem, error) {
	offerings, err := s.repo.Professor.ListOfferings(ctx, id)
	if err != nil {
		s.logger.Error("查询教授授课失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProfessorOfferingItem, 0, len(offerings))
	for _, o := range offerings {
		result = append(result, dto.ProfessorOfferingItem{
			ProfessorCourseSemesterID: o.ProfessorCourseSemesterID,
			CourseID:                  o.CourseID,
			CourseName:                o.CourseName,
			SemesterID:                o.SemesterID,
			SemesterName:              o.SemesterName,
		})
	}
	return result, nil
}

// ────────────────────── Distribution ──────────────────────

func (s *professorService) RatingDistribution(ctx context.Context, id uint) (*dto.RatingDistributionResponse, error) {
	dist, err := s.repo.Rating.Distribution(ctx, id)
	if err != nil {
		s.logger.Error("查询评分分布失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.RatingDistributionResponse{
		Awesome: dist[5],
		Great:   dist[4],
		Good:    dist[3],
		OK:      dist[2],
		Awful:   dist[1],
	}, nil
}

func (s *professorService) TagDistribution(ctx context.Context, id uint, filter dto.OfferingFilter) ([]dto.TagCountResponse, error) {
	var (
		rows []repository.TagCount
		err  error
	)
	if filter.CourseID != 0 && filter.SemesterID != 0 {
		rows, err = s.repo.Tag.ListOfferingTags(ctx, id, filter.CourseID, filter.SemesterID)
	} else {
		rows, err = s.repo.Tag.ListProfessorTags(ctx, id)
	}
	if err != nil {
		s.logger.Error("查询标签分布失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TagCountResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.TagCountResponse{Tag: r.Tag, Count: r.Count})
	}
	return result, nil
}

// ────────────────────── View ──────────────────────

func (s *professorService) RecordView(ctx context.Context, id uint) error {
	if _, err := s.repo.Professor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		s.logger.Error("查询教授失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Professor.IncrementView(ctx, id); err != nil {
		// 与删除并发时外键拒绝
		if pkgerrors.IsForeignKeyViolation(err) {
			return ErrProfessorNotFound
		}
		s.logger.Error("记录浏览失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 管理端 ──────────────────────

func (s *professorService) ListAdmin(ctx context.Context) ([]dto.AdminProfessorResponse, error) {
	profs, err := s.repo.Professor.ListWithDepartment(ctx)
	if err != nil {
		s.logger.Error("列出教授失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AdminProfessorResponse, 0, len(profs))
	for _, p := range profs {
		item := dto.AdminProfessorResponse{
			ID:           p.ID,
			Name:         p.Name,
			DepartmentID: p.DepartmentID,
			University:   p.University,
		}
		if p.Department != nil {
			item.DepartmentName = p.Department.Name
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *professorService) Available(ctx context.Context, courseSemesterID uint) ([]model.Professor, error) {
	profs, err := s.repo.Professor.ListAvailable(ctx, courseSemesterID)
	if err != nil {
		s.logger.Error("查询可分配教授失败", zap.Uint("course_semester_id", courseSemesterID), zap.Error(err))
		return nil, err
	}
	return profs, nil
}

// ensureDepartment 院系必须存在
func (s *professorService) ensureDepartment(ctx context.Context, id uint) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("查询院系失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *professorService) Create(ctx context.Context, req *dto.SaveProfessorRequest) (uint, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return 0, err
	}
	if err := s.ensureDepartment(ctx, req.DepartmentID.Uint()); err != nil {
		return 0, err
	}

	prof := &model.Professor{
		Name:         name,
		DepartmentID: req.DepartmentID.Uint(),
		University:   model.DefaultUniversity,
	}
	if err := s.repo.Professor.Create(ctx, prof); err != nil {
		s.logger.Error("创建教授失败", zap.Error(err))
		return 0, err
	}
	return prof.ID, nil
}

func (s *professorService) Update(ctx context.Context, id uint, req *dto.SaveProfessorRequest) error {
	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	if _, err := s.repo.Professor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		s.logger.Error("查询教授失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if err := s.ensureDepartment(ctx, req.DepartmentID.Uint()); err != nil {
		return err
	}

	if err := s.repo.Professor.Update(ctx, id, name, req.DepartmentID.Uint()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		s.logger.Error("更新教授失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *professorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Professor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		s.logger.Error("查询教授失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Professor.CountAssignments(ctx, id)
	if err != nil {
		s.logger.Error("统计教授授课数失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrProfessorInUse
	}

	if err := s.repo.Professor.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrProfessorNotFound
		case pkgerrors.IsForeignKeyViolation(err):
			return ErrProfessorInUse
		}
		s.logger.Error("删除教授失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
