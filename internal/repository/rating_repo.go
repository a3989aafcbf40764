package repository

import (
	"context"

	"gorm.io/gorm"

	"profguide/backend/internal/model"
)

// RatingRow 评分列表行（含教授、课程、学期）
// Tags 由 ListTagNames 单独填充
type RatingRow struct {
	ID               uint
	Rating           int
	CourseDifficulty int
	CourseQuality    int
	CourseLiking     int
	Review           string
	Grade            string
	CourseType       string
	Date             string
	StudentEmail     string
	ProfessorID      uint
	ProfessorName    string
	CourseID         uint
	CourseName       string
	SemesterID       uint
	SemesterName     string
}

// RatingRepository 评分数据访问接口
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	Exists(ctx context.Context, assignmentID uint, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	// ListByProfessor courseID、semesterID 同时非零时按开课过滤
	ListByProfessor(ctx context.Context, professorID, courseID, semesterID uint) ([]RatingRow, error)
	// ListTagNames 批量查询评分的标签名，按标签名排序
	ListTagNames(ctx context.Context, ratingIDs []uint) (map[uint][]string, error)
	// Distribution 各分值（1..5）的评分条数
	Distribution(ctx context.Context, professorID uint) (map[int]int64, error)
	AddTags(ctx context.Context, ratingID uint, tagIDs []uint) error
}

type ratingRepo struct {
	db *gorm.DB
}

// NewRatingRepo 创建 RatingRepository 实例
func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepo) Exists(ctx context.Context, assignmentID uint, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("professor_course_semester_id = ? AND student_email = ?", assignmentID, email).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *ratingRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Count(&count).Error
	return count, err
}

func (r *ratingRepo) ListByProfessor(ctx context.Context, professorID, courseID, semesterID uint) ([]RatingRow, error) {
	query := r.db.WithContext(ctx).
		Table("ratings r").
		Select(`r.id, r.rating, r.course_difficulty, r.course_quality, r.course_liking,
            r.review, r.grade, r.course_type, r.date, r.student_email,
            p.id AS professor_id, p.name AS professor_name,
            c.id AS course_id, c.name AS course_name,
            s.id AS semester_id, s.name AS semester_name`).
		Joins("JOIN professor_course_semesters pcs ON pcs.id = r.professor_course_semester_id").
		Joins("JOIN course_semesters cs ON cs.id = pcs.course_semester_id").
		Joins("JOIN courses c ON c.id = cs.course_id").
		Joins("JOIN semesters s ON s.id = cs.semester_id").
		Joins("JOIN professors p ON p.id = pcs.professor_id").
		Where("pcs.professor_id = ?", professorID)

	if courseID != 0 && semesterID != 0 {
		query = query.Where("cs.course_id = ? AND cs.semester_id = ?", courseID, semesterID)
	}

	var rows []RatingRow
	err := query.Order("r.date DESC, r.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *ratingRepo) ListTagNames(ctx context.Context, ratingIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(ratingIDs))
	if len(ratingIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RatingID uint
		Name     string
	}
	err := r.db.WithContext(ctx).
		Table("rating_tags rt").
		Select("rt.rating_id, t.name").
		Joins("JOIN tags t ON t.id = rt.tag_id").
		Where("rt.rating_id IN ?", ratingIDs).
		Order("rt.rating_id ASC, t.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RatingID] = append(result[row.RatingID], row.Name)
	}
	return result, nil
}

func (r *ratingRepo) Distribution(ctx context.Context, professorID uint) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Table("ratings r").
		Select("r.rating, COUNT(*) AS count").
		Joins("JOIN professor_course_semesters pcs ON pcs.id = r.professor_course_semester_id").
		Where("pcs.professor_id = ?", professorID).
		Group("r.rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := make(map[int]int64, len(rows))
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return dist, nil
}

func (r *ratingRepo) AddTags(ctx context.Context, ratingID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]model.RatingTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, model.RatingTag{RatingID: ratingID, TagID: id})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
