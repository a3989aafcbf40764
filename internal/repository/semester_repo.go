package repository

import (
	"context"

	"gorm.io/gorm"

	"profguide/backend/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id uint) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
	UpdateName(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
	CountOfferings(ctx context.Context, id uint) (int64, error)
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id uint) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) List(ctx context.Context) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) UpdateName(ctx context.Context, id uint, name string) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Semester{}).
		Where("id = ?", id).
		Update("name", name))
}

func (r *semesterRepo) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Semester{}))
}

// CountOfferings 统计该学期的开课数
func (r *semesterRepo) CountOfferings(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseSemester{}).
		Where("semester_id = ?", id).
		Count(&count).Error
	return count, err
}
