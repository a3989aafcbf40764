package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"profguide/backend/internal/model"
)

// ProfessorStats 教授及其评分聚合
// AverageRating 未取整，无评分时为 0
type ProfessorStats struct {
	ID              uint
	Name            string
	DepartmentID    uint
	Department      string
	University      string
	AverageRating   float64
	NumberOfRatings int64
	ViewCount       int64
}

// ProfessorOffering 教授的授课分配（含课程、学期名称）
type ProfessorOffering struct {
	ProfessorCourseSemesterID uint
	CourseSemesterID          uint
	CourseID                  uint
	CourseName                string
	SemesterID                uint
	SemesterName              string
}

// ProfessorRepository 教授数据访问接口
type ProfessorRepository interface {
	Create(ctx context.Context, prof *model.Professor) error
	GetByID(ctx context.Context, id uint) (*model.Professor, error)
	ListWithDepartment(ctx context.Context) ([]model.Professor, error)
	Update(ctx context.Context, id uint, name string, departmentID uint) error
	Delete(ctx context.Context, id uint) error
	CountAssignments(ctx context.Context, id uint) (int64, error)

	// Search 按教授名、院系名、课程名做不区分大小写的子串匹配，空串返回全部
	Search(ctx context.Context, term string) ([]ProfessorStats, error)
	// ListUnderrated 至少有一条评分、浏览量最少的教授
	ListUnderrated(ctx context.Context, limit int) ([]ProfessorStats, error)
	// ListStats 全部教授的评分聚合（按姓名排序）
	ListStats(ctx context.Context) ([]ProfessorStats, error)
	GetStats(ctx context.Context, id uint) (*ProfessorStats, error)
	ListOfferings(ctx context.Context, id uint) ([]ProfessorOffering, error)
	// ListAvailable 未分配到指定开课的教授
	ListAvailable(ctx context.Context, courseSemesterID uint) ([]model.Professor, error)
	IncrementView(ctx context.Context, id uint) error
}

type professorRepo struct {
	db *gorm.DB
}

// NewProfessorRepo 创建 ProfessorRepository 实例
func NewProfessorRepo(db *gorm.DB) ProfessorRepository {
	return &professorRepo{db: db}
}

// ────────────────────── CRUD ──────────────────────

func (r *professorRepo) Create(ctx context.Context, prof *model.Professor) error {
	return r.db.WithContext(ctx).Create(prof).Error
}

func (r *professorRepo) GetByID(ctx context.Context, id uint) (*model.Professor, error) {
	var prof model.Professor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&prof).Error
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *professorRepo) ListWithDepartment(ctx context.Context) ([]model.Professor, error) {
	var profs []model.Professor
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("name ASC").
		Find(&profs).Error
	return profs, err
}

func (r *professorRepo) Update(ctx context.Context, id uint, name string, departmentID uint) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Professor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":          name,
			"department_id": departmentID,
		}))
}

func (r *professorRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 浏览计数与标签汇总随教授一起删除
		if err := tx.Where("professor_id = ?", id).Delete(&model.ProfessorView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("professor_id = ?", id).Delete(&model.ProfessorTag{}).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ?", id).Delete(&model.Professor{}))
	})
}

func (r *professorRepo) CountAssignments(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProfessorCourseSemester{}).
		Where("professor_id = ?", id).
		Count(&count).Error
	return count, err
}

// ────────────────────── 聚合查询 ──────────────────────

const professorStatsSelect = `
SELECT
    p.id,
    p.name,
    COALESCE(p.department_id, 0) AS department_id,
    COALESCE(d.name, '') AS department,
    COALESCE(p.university, '') AS university,
    COALESCE(AVG(r.rating), 0) AS average_rating,
    COUNT(DISTINCT r.id) AS number_of_ratings,
    COALESCE(MAX(pv.view_count), 0) AS view_count
FROM professors p
LEFT JOIN departments d ON d.id = p.department_id
LEFT JOIN professor_course_semesters pcs ON pcs.professor_id = p.id
LEFT JOIN ratings r ON r.professor_course_semester_id = pcs.id
LEFT JOIN professor_views pv ON pv.professor_id = p.id
`

const professorStatsGroupBy = `
GROUP BY p.id, p.name, p.department_id, d.name, p.university
`

func (r *professorRepo) Search(ctx context.Context, term string) ([]ProfessorStats, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	query := professorStatsSelect + `
WHERE LOWER(p.name) LIKE @term ESCAPE '\'
   OR LOWER(d.name) LIKE @term ESCAPE '\'
   OR EXISTS (
        SELECT 1
        FROM professor_course_semesters spcs
        JOIN course_semesters scs ON scs.id = spcs.course_semester_id
        JOIN courses sc ON sc.id = scs.course_id
        WHERE spcs.professor_id = p.id
          AND LOWER(sc.name) LIKE @term ESCAPE '\'
   )` + professorStatsGroupBy + `
ORDER BY
    CASE
        WHEN LOWER(p.name) LIKE @term ESCAPE '\' THEN 0
        WHEN LOWER(d.name) LIKE @term ESCAPE '\' THEN 1
        ELSE 2
    END,
    p.name ASC`

	var rows []ProfessorStats
	err := r.db.WithContext(ctx).
		Raw(query, map[string]interface{}{"term": pattern}).
		Scan(&rows).Error
	return rows, err
}

func (r *professorRepo) ListUnderrated(ctx context.Context, limit int) ([]ProfessorStats, error) {
	query := professorStatsSelect + professorStatsGroupBy + `
HAVING AVG(r.rating) >= 1.0
ORDER BY COALESCE(MAX(pv.view_count), 0) ASC, p.name ASC
LIMIT ?`

	var rows []ProfessorStats
	err := r.db.WithContext(ctx).
		Raw(query, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *professorRepo) ListStats(ctx context.Context) ([]ProfessorStats, error) {
	query := professorStatsSelect + professorStatsGroupBy + `
ORDER BY p.name ASC`

	var rows []ProfessorStats
	err := r.db.WithContext(ctx).
		Raw(query).
		Scan(&rows).Error
	return rows, err
}

func (r *professorRepo) GetStats(ctx context.Context, id uint) (*ProfessorStats, error) {
	query := professorStatsSelect + `
WHERE p.id = ?` + professorStatsGroupBy

	var row ProfessorStats
	res := r.db.WithContext(ctx).Raw(query, id).Scan(&row)
	if err := affected(res); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *professorRepo) ListOfferings(ctx context.Context, id uint) ([]ProfessorOffering, error) {
	var rows []ProfessorOffering
	err := r.db.WithContext(ctx).Raw(`
SELECT
    pcs.id AS professor_course_semester_id,
    cs.id  AS course_semester_id,
    c.id   AS course_id,
    c.name AS course_name,
    s.id   AS semester_id,
    s.name AS semester_name
FROM professor_course_semesters pcs
JOIN course_semesters cs ON cs.id = pcs.course_semester_id
JOIN courses c ON c.id = cs.course_id
JOIN semesters s ON s.id = cs.semester_id
WHERE pcs.professor_id = ?
ORDER BY s.name DESC, c.name ASC`, id).
		Scan(&rows).Error
	return rows, err
}

func (r *professorRepo) ListAvailable(ctx context.Context, courseSemesterID uint) ([]model.Professor, error) {
	var profs []model.Professor
	err := r.db.WithContext(ctx).
		Where(`NOT EXISTS (
            SELECT 1 FROM professor_course_semesters pcs
            WHERE pcs.professor_id = professors.id AND pcs.course_semester_id = ?
        )`, courseSemesterID).
		Order("name ASC").
		Find(&profs).Error
	return profs, err
}

// IncrementView 浏览计数 +1，首次浏览时插入
func (r *professorRepo) IncrementView(ctx context.Context, id uint) error {
	view := model.ProfessorView{ProfessorID: id, ViewCount: 1}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "professor_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"view_count": gorm.Expr("professor_views.view_count + 1"),
			}),
		}).
		Create(&view).Error
}
