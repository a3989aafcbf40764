package model

// 授课方式
const (
	CourseTypeOnline  = "online"
	CourseTypeOffline = "offline"
)

// RatingDateLayout 评分时间格式（UTC，毫秒精度），字典序即时间序
const RatingDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Grades 允许提交的成绩等级（与数据库 CHECK 约束一致）
var Grades = []string{
	"A+", "A", "A-",
	"B+", "B", "B-",
	"C+", "C", "C-",
	"D+", "D", "D-",
	"F", "E", "FF", "I", "IF", "IU",
	"M", "MF", "MU", "N", "R", "S",
	"U", "W", "WC", "Z",
}

// IsValidGrade 判断成绩等级是否合法
func IsValidGrade(grade string) bool {
	for _, g := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// IsValidCourseType 判断授课方式是否合法
func IsValidCourseType(courseType string) bool {
	return courseType == CourseTypeOnline || courseType == CourseTypeOffline
}

// Rating 评分表 — 对应 ratings
// (professor_course_semester_id, student_email) 唯一：每位学生每门授课只能评一次
type Rating struct {
	ID                        uint   `gorm:"primaryKey"                      json:"id"`
	ProfessorCourseSemesterID uint   `gorm:"not null;uniqueIndex:idx_rating" json:"professor_course_semester_id"`
	StudentEmail              string `gorm:"type:text;not null;uniqueIndex:idx_rating" json:"student_email"`
	Rating                    int    `gorm:"not null"                        json:"rating"`
	CourseDifficulty          int    `gorm:"not null"                        json:"course_difficulty"`
	CourseQuality             int    `gorm:"not null"                        json:"course_quality"`
	CourseLiking              int    `gorm:"not null"                        json:"course_liking"`
	Review                    string `gorm:"type:text"                       json:"review"`
	Grade                     string `gorm:"type:text"                       json:"grade"`
	CourseType                string `gorm:"type:text"                       json:"course_type"`
	Date                      string `gorm:"type:text"                       json:"date"` // RatingDateLayout
}

// TableName 指定表名
func (Rating) TableName() string { return "ratings" }
