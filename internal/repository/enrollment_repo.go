package repository

import (
	"context"

	"gorm.io/gorm"

	"profguide/backend/internal/model"
)

// EnrollmentRow 选课列表行（含课程、学期、教授名称）
type EnrollmentRow struct {
	ID                        uint
	ProfessorCourseSemesterID uint
	StudentEmail              string
	CourseName                string
	SemesterName              string
	ProfessorName             string
}

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Exists(ctx context.Context, assignmentID uint, email string) (bool, error)
	// ExistsForEmail 该邮箱是否在任一授课分配中有选课记录
	ExistsForEmail(ctx context.Context, email string) (bool, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]EnrollmentRow, error)
	Delete(ctx context.Context, assignmentID uint, email string) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepo) Exists(ctx context.Context, assignmentID uint, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("professor_course_semester_id = ? AND student_email = ?", assignmentID, email).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepo) ExistsForEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("student_email = ?", email).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepo) ListByAssignment(ctx context.Context, assignmentID uint) ([]EnrollmentRow, error) {
	var rows []EnrollmentRow
	err := r.db.WithContext(ctx).Raw(`
SELECT
    e.id,
    e.professor_course_semester_id,
    e.student_email,
    c.name AS course_name,
    s.name AS semester_name,
    p.name AS professor_name
FROM enrollments e
JOIN professor_course_semesters pcs ON pcs.id = e.professor_course_semester_id
JOIN course_semesters cs ON cs.id = pcs.course_semester_id
JOIN courses c ON c.id = cs.course_id
JOIN semesters s ON s.id = cs.semester_id
JOIN professors p ON p.id = pcs.professor_id
WHERE e.professor_course_semester_id = ?
ORDER BY e.student_email ASC`, assignmentID).
		Scan(&rows).Error
	return rows, err
}

func (r *enrollmentRepo) Delete(ctx context.Context, assignmentID uint, email string) error {
	return affected(r.db.WithContext(ctx).
		Where("professor_course_semester_id = ? AND student_email = ?", assignmentID, email).
		Delete(&model.Enrollment{}))
}
