// Package seed 写入演示数据与管理员账号，可重复执行
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"profguide/backend/internal/model"
	"profguide/backend/internal/repository"
)

// Options 种子数据参数
type Options struct {
	AdminEmail    string
	AdminPassword string
	BcryptCost    int
	Now           func() time.Time
}

// TableCount 表名与行数
type TableCount struct {
	Table string
	Rows  int64
}

// ── 演示数据 ──

var departments = []string{
	"Computer Science", "Physics", "Mathematics", "Biology", "Chemistry",
	"Engineering", "Business", "Psychology", "English", "History",
}

// professor 姓名 → 院系
var professors = []struct{ Name, Department string }{
	{"John Doe", "Computer Science"},
	{"Jane Smith", "Physics"},
	{"Bob Johnson", "Mathematics"},
	{"Alice Brown", "Biology"},
	{"Charlie Davis", "Chemistry"},
	{"Eva Wilson", "Computer Science"},
	{"Frank Miller", "Physics"},
	{"Grace Lee", "Mathematics"},
}

var courses = []string{
	"Data Structures", "Algorithms", "Calculus I", "Organic Chemistry",
	"Introduction to Psychology", "World History", "Business Ethics", "Quantum Physics",
	"Cell Biology", "Software Engineering", "Database Systems", "Machine Learning",
	"Web Development", "Operating Systems",
}

var semesters = []string{"2024 Spring", "2024 Fall", "2024 Summer", "2025 Spring"}

// offerings 开课及其授课教授
var offerings = []struct{ Course, Semester, Professor string }{
	{"Data Structures", "2024 Spring", "John Doe"},
	{"Algorithms", "2024 Fall", "Eva Wilson"},
	{"Calculus I", "2024 Spring", "Grace Lee"},
	{"Database Systems", "2024 Spring", "John Doe"},
	{"Machine Learning", "2024 Fall", "Eva Wilson"},
	{"Web Development", "2024 Spring", "Grace Lee"},
}

// 选修 Data Structures 的学生
var students = []string{
	"student1@usf.edu", "student2@usf.edu", "student3@usf.edu", "student4@usf.edu", "navya@usf.edu",
}

var tags = []string{
	"Gives Pop Quizzes", "Lots of Homework", "Group Projects", "Clear Grading", "Test Heavy",
	"Participation Matters", "Skip Class? You Won't Pass.", "Extra Credit", "Accessible Outside Class",
	"Tough Grader", "Amazing Lectures", "Lecture Heavy", "Hilarious", "Beware of Surprise Quizzes",
	"Inspirational", "So Many Papers", "Graded by Few Things", "Would Take Again",
}

// 示例评分使用的标签
var ratingTags = []string{"Amazing Lectures", "Would Take Again", "Clear Grading"}

var reviews = []string{
	"The professor was excellent at explaining complex concepts. The course material was challenging but well-structured and fair.",
	"Great teaching style and very approachable. The assignments were helpful for understanding the material and preparing for exams.",
	"One of the best professors I've had. Clear explanations, fair grading and plenty of office hours whenever I needed extra help.",
	"Very knowledgeable and passionate about the subject. Makes difficult concepts easy to understand with well chosen real examples.",
}

var grades = []string{"A", "A-", "B+", "B", "A+"}

// Run 在单个事务内写入全部种子数据，已存在的行保持不变，最后重建教授标签汇总
func Run(ctx context.Context, db *gorm.DB, opts Options, logger *zap.Logger) error {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("管理员密码哈希失败: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &seeder{tx: tx}

		for _, name := range departments {
			d := model.Department{Name: name}
			if err := s.firstOrCreate(&d, model.Department{Name: name}); err != nil {
				return err
			}
			s.departments = append(s.departments, d)
		}

		profIDs := make(map[string]uint, len(professors))
		for _, p := range professors {
			prof := model.Professor{}
			if err := s.firstOrCreate(&prof, model.Professor{Name: p.Name},
				model.Professor{DepartmentID: s.departmentID(p.Department), University: model.DefaultUniversity},
			); err != nil {
				return err
			}
			profIDs[p.Name] = prof.ID
		}

		courseIDs := make(map[string]uint, len(courses))
		for _, name := range courses {
			c := model.Course{}
			if err := s.firstOrCreate(&c, model.Course{Name: name}); err != nil {
				return err
			}
			courseIDs[name] = c.ID
		}

		semesterIDs := make(map[string]uint, len(semesters))
		for _, name := range semesters {
			sem := model.Semester{}
			if err := s.firstOrCreate(&sem, model.Semester{Name: name}); err != nil {
				return err
			}
			semesterIDs[name] = sem.ID
		}

		// 开课与授课分配
		var dataStructuresPCS uint
		for _, o := range offerings {
			cs := model.CourseSemester{}
			if err := s.firstOrCreate(&cs, model.CourseSemester{CourseID: courseIDs[o.Course], SemesterID: semesterIDs[o.Semester]}); err != nil {
				return err
			}
			pcs := model.ProfessorCourseSemester{}
			if err := s.firstOrCreate(&pcs, model.ProfessorCourseSemester{CourseSemesterID: cs.ID},
				model.ProfessorCourseSemester{ProfessorID: profIDs[o.Professor]},
			); err != nil {
				return err
			}
			if o.Course == "Data Structures" {
				dataStructuresPCS = pcs.ID
			}
		}

		tagIDs := make(map[string]uint, len(tags))
		for _, name := range tags {
			t := model.Tag{}
			if err := s.firstOrCreate(&t, model.Tag{Name: name}); err != nil {
				return err
			}
			tagIDs[name] = t.ID
		}

		// 选课与评分
		now := opts.Now().UTC()
		for i, email := range students {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Enrollment{
				ProfessorCourseSemesterID: dataStructuresPCS,
				StudentEmail:              email,
			}).Error; err != nil {
				return fmt.Errorf("写入选课失败: %w", err)
			}

			r := model.Rating{}
			if err := s.firstOrCreate(&r,
				model.Rating{ProfessorCourseSemesterID: dataStructuresPCS, StudentEmail: email},
				model.Rating{
					Rating:           3 + i%3,
					CourseDifficulty: 2 + i%3,
					CourseQuality:    3 + (i+1)%3,
					CourseLiking:     3 + (i+2)%3,
					Review:           reviews[i%len(reviews)],
					Grade:            grades[i%len(grades)],
					CourseType:       []string{model.CourseTypeOnline, model.CourseTypeOffline}[i%2],
					Date:             now.AddDate(0, 0, -3*i).Format(model.RatingDateLayout),
				},
			); err != nil {
				return err
			}

			for _, name := range ratingTags[:1+i%len(ratingTags)] {
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.RatingTag{
					RatingID: r.ID,
					TagID:    tagIDs[name],
				}).Error; err != nil {
					return fmt.Errorf("写入评分标签失败: %w", err)
				}
			}
		}

		// 浏览量
		for i, p := range professors {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.ProfessorView{
				ProfessorID: profIDs[p.Name],
				ViewCount:   (i*37)%100 + 1,
			}).Error; err != nil {
				return fmt.Errorf("写入浏览量失败: %w", err)
			}
		}

		// 管理员
		admin := model.User{}
		if err := s.firstOrCreate(&admin, model.User{Email: opts.AdminEmail}, model.User{
			Password:    string(hash),
			DisplayName: "ProfGuide Admin",
			University:  model.DefaultUniversity,
			IsAdmin:     true,
		}); err != nil {
			return err
		}

		professorsTagged, rows, err := repository.NewRepository(tx).Tag.RebuildProfessorTags(ctx)
		if err != nil {
			return fmt.Errorf("重建教授标签失败: %w", err)
		}

		logger.Info("种子数据写入完成",
			zap.Int("departments", len(departments)),
			zap.Int("professors", len(professors)),
			zap.Int64("tagged_professors", professorsTagged),
			zap.Int64("professor_tags", rows),
		)
		return nil
	})
}

// Counts 统计各业务表行数
func Counts(ctx context.Context, db *gorm.DB) ([]TableCount, error) {
	tables := []string{
		"departments", "professors", "courses", "semesters", "course_semesters",
		"professor_course_semesters", "enrollments", "ratings", "tags", "rating_tags",
		"professor_tags", "professor_views", "users",
	}

	result := make([]TableCount, 0, len(tables))
	for _, table := range tables {
		var n int64
		if err := db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("统计 %s 失败: %w", table, err)
		}
		result = append(result, TableCount{Table: table, Rows: n})
	}
	return result, nil
}

type seeder struct {
	tx          *gorm.DB
	departments []model.Department
}

// firstOrCreate 按 where 查找，不存在时以 where + attrs 创建
func (s *seeder) firstOrCreate(dest interface{}, where interface{}, attrs ...interface{}) error {
	q := s.tx.Where(where)
	if len(attrs) > 0 {
		q = q.Attrs(attrs...)
	}
	if err := q.FirstOrCreate(dest).Error; err != nil {
		return fmt.Errorf("写入 %T 失败: %w", dest, err)
	}
	return nil
}

func (s *seeder) departmentID(name string) uint {
	for _, d := range s.departments {
		if d.Name == name {
			return d.ID
		}
	}
	return 0
}
