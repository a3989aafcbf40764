package repository

import (
	"context"

	"gorm.io/gorm"

	"profguide/backend/internal/model"
)

// CourseStats 课程评分聚合（未取整）
type CourseStats struct {
	ID                uint
	Name              string
	AverageQuality    float64
	AverageDifficulty float64
	AverageLiking     float64
	NumberOfRatings   int64
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id uint) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	UpdateName(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
	CountOfferings(ctx context.Context, id uint) (int64, error)
	// ListAvailable 指定学期尚未开设的课程
	ListAvailable(ctx context.Context, semesterID uint) ([]model.Course, error)
	// ListTopRated 至少 minRatings 条评分、按平均质量降序
	ListTopRated(ctx context.Context, minRatings, limit int) ([]CourseStats, error)
	ListStats(ctx context.Context) ([]CourseStats, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) UpdateName(ctx context.Context, id uint, name string) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", id).
		Update("name", name))
}

func (r *courseRepo) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Course{}))
}

func (r *courseRepo) CountOfferings(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseSemester{}).
		Where("course_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *courseRepo) ListAvailable(ctx context.Context, semesterID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where(`NOT EXISTS (
            SELECT 1 FROM course_semesters cs
            WHERE cs.course_id = courses.id AND cs.semester_id = ?
        )`, semesterID).
		Order("name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListTopRated(ctx context.Context, minRatings, limit int) ([]CourseStats, error) {
	var rows []CourseStats
	err := r.db.WithContext(ctx).Raw(`
SELECT
    c.id,
    c.name,
    AVG(r.course_quality)    AS average_quality,
    AVG(r.course_difficulty) AS average_difficulty,
    AVG(r.course_liking)     AS average_liking,
    COUNT(DISTINCT r.id)     AS number_of_ratings
FROM courses c
JOIN course_semesters cs ON cs.course_id = c.id
JOIN professor_course_semesters pcs ON pcs.course_semester_id = cs.id
JOIN ratings r ON r.professor_course_semester_id = pcs.id
GROUP BY c.id, c.name
HAVING COUNT(DISTINCT r.id) >= ?
ORDER BY AVG(r.course_quality) DESC, c.name ASC
LIMIT ?`, minRatings, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *courseRepo) ListStats(ctx context.Context) ([]CourseStats, error) {
	var rows []CourseStats
	err := r.db.WithContext(ctx).Raw(`
SELECT
    c.id,
    c.name,
    COALESCE(AVG(r.course_quality), 0)    AS average_quality,
    COALESCE(AVG(r.course_difficulty), 0) AS average_difficulty,
    COALESCE(AVG(r.course_liking), 0)     AS average_liking,
    COUNT(DISTINCT r.id)                  AS number_of_ratings
FROM courses c
LEFT JOIN course_semesters cs ON cs.course_id = c.id
LEFT JOIN professor_course_semesters pcs ON pcs.course_semester_id = cs.id
LEFT JOIN ratings r ON r.professor_course_semester_id = pcs.id
GROUP BY c.id, c.name
ORDER BY c.name ASC`).
		Scan(&rows).Error
	return rows, err
}
