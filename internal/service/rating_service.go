package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
	pkgerrors "profguide/backend/pkg/errors"
)

// MinReviewLength 评价最少字符数（按 Unicode 码点计）
const MinReviewLength = 100

// ── 评分模块业务错误 ──

var (
	ErrReviewTooShort     = errors.New("评价过短")
	ErrInvalidCourseType  = errors.New("授课方式无效")
	ErrOfferingNotFound   = errors.New("教授与课程学期组合不存在")
	ErrStudentNotEnrolled = errors.New("学生未选修该课程")
	ErrAlreadyRated       = errors.New("已评价过该课程")
	ErrUnknownTag         = errors.New("标签不存在")
)

// RatingService 评分业务接口
type RatingService interface {
	// Submit 以 email 身份提交评分，评分、标签关联与教授标签计数在同一事务内写入
	Submit(ctx context.Context, email string, req *dto.SubmitRatingRequest) (uint, error)
	ListByProfessor(ctx context.Context, professorID uint, filter dto.OfferingFilter) ([]dto.RatingResponse, error)
	Stats(ctx context.Context) (*dto.RatingStatsResponse, error)
}

type ratingService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRatingService 创建 RatingService 实例
func NewRatingService(repo *repository.Repository, logger *zap.Logger) RatingService {
	return &ratingService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Submit ──────────────────────

func (s *ratingService) Submit(ctx context.Context, email string, req *dto.SubmitRatingRequest) (uint, error) {
	email = NormalizeEmail(email)

	// 1. 评价长度与授课方式
	if utf8.RuneCountInString(req.Review) < MinReviewLength {
		return 0, ErrReviewTooShort
	}
	if !model.IsValidCourseType(req.CourseType) {
		return 0, ErrInvalidCourseType
	}

	// 2. 定位授课分配
	pcs, err := s.repo.Offering.FindAssignment(ctx, req.ProfessorID.Uint(), req.CourseID.Uint(), req.SemesterID.Uint())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrOfferingNotFound
		}
		s.logger.Error("查询授课分配失败", zap.Error(err))
		return 0, err
	}

	// 3. 必须选修过
	enrolled, err := s.repo.Enrollment.Exists(ctx, pcs.ID, email)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return 0, err
	}
	if !enrolled {
		return 0, ErrStudentNotEnrolled
	}

	// 4. 每门授课只能评一次（唯一索引兜底并发）
	rated, err := s.repo.Rating.Exists(ctx, pcs.ID, email)
	if err != nil {
		s.logger.Error("查询评分失败", zap.Error(err))
		return 0, err
	}
	if rated {
		return 0, ErrAlreadyRated
	}

	// 5. 标签去重并校验存在
	tagIDs := uniqueIDs(dto.FlexIDs(req.Tags))
	if len(tagIDs) > 0 {
		count, err := s.repo.Tag.CountByIDs(ctx, tagIDs)
		if err != nil {
			s.logger.Error("查询标签失败", zap.Error(err))
			return 0, err
		}
		if count != int64(len(tagIDs)) {
			return 0, ErrUnknownTag
		}
	}

	rating := &model.Rating{
		ProfessorCourseSemesterID: pcs.ID,
		StudentEmail:              email,
		Rating:                    req.Rating,
		CourseDifficulty:          req.CourseDifficulty,
		CourseQuality:             req.CourseQuality,
		CourseLiking:              req.CourseLiking,
		Review:                    req.Review,
		Grade:                     req.Grade,
		CourseType:                req.CourseType,
		Date:                      s.now().UTC().Format(model.RatingDateLayout),
	}

	// 6. 事务写入
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Rating.Create(ctx, rating); err != nil {
			return err
		}
		if err := txRepo.Rating.AddTags(ctx, rating.ID, tagIDs); err != nil {
			return err
		}
		return txRepo.Tag.IncrementProfessorTags(ctx, pcs.ProfessorID, tagIDs)
	})
	if err != nil {
		switch {
		case pkgerrors.IsUniqueViolation(err):
			return 0, ErrAlreadyRated
		case pkgerrors.IsForeignKeyViolation(err):
			// 选课或标签在校验后被删除
			return 0, ErrStudentNotEnrolled
		}
		s.logger.Error("写入评分失败", zap.Error(err))
		return 0, err
	}

	s.logger.Info("评分提交成功",
		zap.Uint("rating_id", rating.ID),
		zap.Uint("assignment_id", pcs.ID),
		zap.Int("tags", len(tagIDs)),
	)
	return rating.ID, nil
}

// ────────────────────── List ──────────────────────

func (s *ratingService) ListByProfessor(ctx context.Context, professorID uint, filter dto.OfferingFilter) ([]dto.RatingResponse, error) {
	rows, err := s.repo.Rating.ListByProfessor(ctx, professorID, filter.CourseID, filter.SemesterID)
	if err != nil {
		s.logger.Error("查询评分列表失败", zap.Uint("professor_id", professorID), zap.Error(err))
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	tags, err := s.repo.Rating.ListTagNames(ctx, ids)
	if err != nil {
		s.logger.Error("查询评分标签失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RatingResponse, 0, len(rows))
	for _, r := range rows {
		names := tags[r.ID]
		if names == nil {
			names = []string{}
		}
		result = append(result, dto.RatingResponse{
			ID:               r.ID,
			Rating:           r.Rating,
			CourseDifficulty: r.CourseDifficulty,
			CourseQuality:    r.CourseQuality,
			CourseLiking:     r.CourseLiking,
			Review:           r.Review,
			Grade:            r.Grade,
			CourseType:       r.CourseType,
			Date:             r.Date,
			Email:            r.StudentEmail,
			Professor:        dto.IDName{ID: r.ProfessorID, Name: r.ProfessorName},
			Course:           dto.IDName{ID: r.CourseID, Name: r.CourseName},
			Semester:         dto.IDName{ID: r.SemesterID, Name: r.SemesterName},
			Tags:             names,
		})
	}
	return result, nil
}

func (s *ratingService) Stats(ctx context.Context) (*dto.RatingStatsResponse, error) {
	count, err := s.repo.Rating.Count(ctx)
	if err != nil {
		s.logger.Error("统计评分数失败", zap.Error(err))
		return nil, err
	}
	return &dto.RatingStatsResponse{TotalReviews: count}, nil
}

// uniqueIDs 去重并保持原顺序
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
