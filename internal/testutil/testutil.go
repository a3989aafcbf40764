// Package testutil 提供集成测试使用的内存 SQLite 数据库与基础数据
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"profguide/backend/config"
	"profguide/backend/internal/model"
	"profguide/backend/pkg/database"
)

// NewDB 为当前测试创建独立的内存数据库并执行迁移
// 库名取自测试名，测试结束时关闭连接即销毁
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name),
		MaxOpenConns: 1,
	}

	db, err := database.NewDB(cfg, "warn", zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(sqlDB, "sqlite", zap.NewNop()))
	return db
}

// Fixture 一组最小可用的关联数据：院系、教授、课程、学期、开课、授课分配、选课
type Fixture struct {
	Department     model.Department
	Professor      model.Professor
	Course         model.Course
	Semester       model.Semester
	CourseSemester model.CourseSemester
	Assignment     model.ProfessorCourseSemester
	Enrollment     model.Enrollment
	Tags           []model.Tag
}

// StudentEmail Fixture 中已选课的学生邮箱
const StudentEmail = "student@usf.edu"

// SeedFixture 写入 Fixture 数据
func SeedFixture(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()
	ctx := context.Background()
	f := &Fixture{}

	f.Department = model.Department{Name: "Computer Science"}
	require.NoError(t, db.WithContext(ctx).Create(&f.Department).Error)

	f.Professor = model.Professor{Name: "Alice Smith", DepartmentID: f.Department.ID}
	require.NoError(t, db.WithContext(ctx).Create(&f.Professor).Error)

	f.Course = model.Course{Name: "Data Structures"}
	require.NoError(t, db.WithContext(ctx).Create(&f.Course).Error)

	f.Semester = model.Semester{Name: "Fall 2024"}
	require.NoError(t, db.WithContext(ctx).Create(&f.Semester).Error)

	f.CourseSemester = model.CourseSemester{CourseID: f.Course.ID, SemesterID: f.Semester.ID}
	require.NoError(t, db.WithContext(ctx).Create(&f.CourseSemester).Error)

	f.Assignment = model.ProfessorCourseSemester{ProfessorID: f.Professor.ID, CourseSemesterID: f.CourseSemester.ID}
	require.NoError(t, db.WithContext(ctx).Create(&f.Assignment).Error)

	f.Enrollment = model.Enrollment{ProfessorCourseSemesterID: f.Assignment.ID, StudentEmail: StudentEmail}
	require.NoError(t, db.WithContext(ctx).Create(&f.Enrollment).Error)

	f.Tags = []model.Tag{{Name: "Caring"}, {Name: "Tough grader"}}
	require.NoError(t, db.WithContext(ctx).Create(&f.Tags).Error)

	return f
}

// CreateUser 写入一个用户，密码以最低 bcrypt 成本哈希
func CreateUser(t *testing.T, db *gorm.DB, email, password string, isAdmin bool) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: strings.Split(email, "@")[0],
		IsAdmin:     isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// RatingFor 构造一条可直接写入的评分
func RatingFor(assignmentID uint, email string, score int) *model.Rating {
	return &model.Rating{
		ProfessorCourseSemesterID: assignmentID,
		StudentEmail:              email,
		Rating:                    score,
		CourseDifficulty:          3,
		CourseQuality:             score,
		CourseLiking:              score,
		Review:                    strings.Repeat("r", 100),
		Grade:                     "A",
		CourseType:                model.CourseTypeOffline,
		Date:                      "2024-12-01T10:00:00Z",
	}
}
