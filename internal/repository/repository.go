package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
//
// 由 NewRepository 创建的聚合绑定数据库连接，Transaction 开启真实事务。
// 直接以字面量组装的聚合（单元测试中注入内存实现）不绑定连接，
// Transaction 在当前聚合上直接执行 fn，不提供原子性，仅作为测试接缝使用。
type Repository struct {
	db *gorm.DB

	User       UserRepository
	Department DepartmentRepository
	Professor  ProfessorRepository
	Course     CourseRepository
	Semester   SemesterRepository
	Offering   OfferingRepository
	Enrollment EnrollmentRepository
	Rating     RatingRepository
	Tag        TagRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Department: NewDepartmentRepo(db),
		Professor:  NewProfessorRepo(db),
		Course:     NewCourseRepo(db),
		Semester:   NewSemesterRepo(db),
		Offering:   NewOfferingRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		Rating:     NewRatingRepo(db),
		Tag:        NewTagRepo(db),
	}
}

// Transaction 在同一事务内执行 fn，fn 返回错误时回滚
// 未绑定数据库连接的聚合直接执行 fn，见 Repository 说明
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// escapeLike 转义 LIKE 通配符，配合 ESCAPE '\' 使用
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// affected 将 0 行影响统一视为记录不存在
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
