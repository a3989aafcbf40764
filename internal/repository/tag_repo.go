package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"profguide/backend/internal/model"
)

// TagCount 标签及出现次数
type TagCount struct {
	Tag   string
	Count int64
}

// TagRepository 标签与教授标签汇总数据访问接口
type TagRepository interface {
	List(ctx context.Context) ([]model.Tag, error)
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
	// IncrementProfessorTags 教授标签计数 +1，不存在时插入 count=1
	IncrementProfessorTags(ctx context.Context, professorID uint, tagIDs []uint) error
	// ListProfessorTags 预计算的教授标签汇总，按次数降序
	ListProfessorTags(ctx context.Context, professorID uint) ([]TagCount, error)
	// ListOfferingTags 实时统计教授在某开课下的标签，按次数降序
	ListOfferingTags(ctx context.Context, professorID, courseID, semesterID uint) ([]TagCount, error)
	// RebuildProfessorTags 由 rating_tags 全量重建 professor_tags
	// 需在事务内调用，返回涉及的教授数与重建后的行数
	RebuildProfessorTags(ctx context.Context) (professors int64, rows int64, err error)
}

type tagRepo struct {
	db *gorm.DB
}

// NewTagRepo 创建 TagRepository 实例
func NewTagRepo(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepo) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *tagRepo) IncrementProfessorTags(ctx context.Context, professorID uint, tagIDs []uint) error {
	for _, tagID := range tagIDs {
		pt := model.ProfessorTag{ProfessorID: professorID, TagID: tagID, Count: 1}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "professor_id"}, {Name: "tag_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"count": gorm.Expr("professor_tags.count + 1"),
				}),
			}).
			Create(&pt).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *tagRepo) ListProfessorTags(ctx context.Context, professorID uint) ([]TagCount, error) {
	var rows []TagCount
	err := r.db.WithContext(ctx).
		Table("professor_tags pt").
		Select("t.name AS tag, pt.count").
		Joins("JOIN tags t ON t.id = pt.tag_id").
		Where("pt.professor_id = ?", professorID).
		Order("pt.count DESC, t.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *tagRepo) ListOfferingTags(ctx context.Context, professorID, courseID, semesterID uint) ([]TagCount, error) {
	var rows []TagCount
	err := r.db.WithContext(ctx).
		Table("rating_tags rt").
		Select("t.name AS tag, COUNT(*) AS count").
		Joins("JOIN tags t ON t.id = rt.tag_id").
		Joins("JOIN ratings r ON r.id = rt.rating_id").
		Joins("JOIN professor_course_semesters pcs ON pcs.id = r.professor_course_semester_id").
		Joins("JOIN course_semesters cs ON cs.id = pcs.course_semester_id").
		Where("pcs.professor_id = ? AND cs.course_id = ? AND cs.semester_id = ?", professorID, courseID, semesterID).
		Group("t.id, t.name").
		Order("COUNT(*) DESC, t.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *tagRepo) RebuildProfessorTags(ctx context.Context) (int64, int64, error) {
	db := r.db.WithContext(ctx)

	if err := db.Exec("DELETE FROM professor_tags").Error; err != nil {
		return 0, 0, err
	}

	res := db.Exec(`
INSERT INTO professor_tags (professor_id, tag_id, count)
SELECT pcs.professor_id, rt.tag_id, COUNT(*)
FROM rating_tags rt
JOIN ratings r ON r.id = rt.rating_id
JOIN professor_course_semesters pcs ON pcs.id = r.professor_course_semester_id
GROUP BY pcs.professor_id, rt.tag_id`)
	if res.Error != nil {
		return 0, 0, res.Error
	}

	var professors int64
	if err := db.Model(&model.ProfessorTag{}).
		Distinct("professor_id").
		Count(&professors).Error; err != nil {
		return 0, 0, err
	}
	return professors, res.RowsAffected, nil
}
