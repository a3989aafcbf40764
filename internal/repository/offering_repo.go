package repository

import (
	"context"

	"gorm.io/gorm"

	"profguide/backend/internal/model"
)

// CourseSemesterRow 开课列表行（含授课教授）
// 未分配教授时 ProfessorID 为 nil，ProfessorName 为 Unassigned
type CourseSemesterRow struct {
	ID            uint
	CourseID      uint
	CourseName    string
	SemesterID    uint
	SemesterName  string
	ProfessorID   *uint
	ProfessorName string
}

// OfferingRepository 开课与授课分配数据访问接口
// 覆盖 course_semesters 与 professor_course_semesters 两张表
type OfferingRepository interface {
	CreateCourseSemester(ctx context.Context, cs *model.CourseSemester) error
	GetCourseSemester(ctx context.Context, id uint) (*model.CourseSemester, error)
	ListCourseSemesters(ctx context.Context) ([]CourseSemesterRow, error)
	DeleteCourseSemester(ctx context.Context, id uint) error

	CreateAssignment(ctx context.Context, pcs *model.ProfessorCourseSemester) error
	GetAssignment(ctx context.Context, id uint) (*model.ProfessorCourseSemester, error)
	GetAssignmentByCourseSemester(ctx context.Context, courseSemesterID uint) (*model.ProfessorCourseSemester, error)
	// FindAssignment 由（教授, 课程, 学期）定位授课分配
	FindAssignment(ctx context.Context, professorID, courseID, semesterID uint) (*model.ProfessorCourseSemester, error)
	DeleteAssignmentByCourseSemester(ctx context.Context, courseSemesterID uint) error
	// CountAssignmentDependents 统计授课分配下的选课与评分条数
	CountAssignmentDependents(ctx context.Context, id uint) (enrollments int64, ratings int64, err error)
}

type offeringRepo struct {
	db *gorm.DB
}

// NewOfferingRepo 创建 OfferingRepository 实例
func NewOfferingRepo(db *gorm.DB) OfferingRepository {
	return &offeringRepo{db: db}
}

// ────────────────────── course_semesters ──────────────────────

func (r *offeringRepo) CreateCourseSemester(ctx context.Context, cs *model.CourseSemester) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *offeringRepo) GetCourseSemester(ctx context.Context, id uint) (*model.CourseSemester, error) {
	var cs model.CourseSemester
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *offeringRepo) ListCourseSemesters(ctx context.Context) ([]CourseSemesterRow, error) {
	var rows []CourseSemesterRow
	err := r.db.WithContext(ctx).Raw(`
SELECT
    cs.id,
    c.id   AS course_id,
    c.name AS course_name,
    s.id   AS semester_id,
    s.name AS semester_name,
    p.id   AS professor_id,
    COALESCE(p.name, 'Unassigned') AS professor_name
FROM course_semesters cs
JOIN courses c ON c.id = cs.course_id
JOIN semesters s ON s.id = cs.semester_id
LEFT JOIN professor_course_semesters pcs ON pcs.course_semester_id = cs.id
LEFT JOIN professors p ON p.id = pcs.professor_id
ORDER BY s.name ASC, c.name ASC`).
		Scan(&rows).Error
	return rows, err
}

func (r *offeringRepo) DeleteCourseSemester(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CourseSemester{}))
}

// ────────────────────── professor_course_semesters ──────────────────────

func (r *offeringRepo) CreateAssignment(ctx context.Context, pcs *model.ProfessorCourseSemester) error {
	return r.db.WithContext(ctx).Create(pcs).Error
}

func (r *offeringRepo) GetAssignment(ctx context.Context, id uint) (*model.ProfessorCourseSemester, error) {
	var pcs model.ProfessorCourseSemester
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pcs).Error
	if err != nil {
		return nil, err
	}
	return &pcs, nil
}

func (r *offeringRepo) GetAssignmentByCourseSemester(ctx context.Context, courseSemesterID uint) (*model.ProfessorCourseSemester, error) {
	var pcs model.ProfessorCourseSemester
	err := r.db.WithContext(ctx).
		Where("course_semester_id = ?", courseSemesterID).
		First(&pcs).Error
	if err != nil {
		return nil, err
	}
	return &pcs, nil
}

func (r *offeringRepo) FindAssignment(ctx context.Context, professorID, courseID, semesterID uint) (*model.ProfessorCourseSemester, error) {
	var pcs model.ProfessorCourseSemester
	err := r.db.WithContext(ctx).
		Joins("JOIN course_semesters cs ON cs.id = professor_course_semesters.course_semester_id").
		Where("professor_course_semesters.professor_id = ? AND cs.course_id = ? AND cs.semester_id = ?",
			professorID, courseID, semesterID).
		First(&pcs).Error
	if err != nil {
		return nil, err
	}
	return &pcs, nil
}

func (r *offeringRepo) DeleteAssignmentByCourseSemester(ctx context.Context, courseSemesterID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("course_semester_id = ?", courseSemesterID).
		Delete(&model.ProfessorCourseSemester{}))
}

func (r *offeringRepo) CountAssignmentDependents(ctx context.Context, id uint) (int64, int64, error) {
	var enrollments, ratings int64
	if err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("professor_course_semester_id = ?", id).
		Count(&enrollments).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("professor_course_semester_id = ?", id).
		Count(&ratings).Error; err != nil {
		return 0, 0, err
	}
	return enrollments, ratings, nil
}
