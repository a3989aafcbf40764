package model

// Course 课程表 — 对应 courses
type Course struct {
	ID   uint   `gorm:"primaryKey"                    json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseSemester 开课（课程 × 学期）— 对应 course_semesters
type CourseSemester struct {
	ID         uint `gorm:"primaryKey"                                  json:"id"`
	CourseID   uint `gorm:"not null;uniqueIndex:idx_course_semester"    json:"course_id"`
	SemesterID uint `gorm:"not null;uniqueIndex:idx_course_semester"    json:"semester_id"`

	// 关联
	Course   *Course   `gorm:"foreignKey:CourseID"   json:"course,omitempty"`
	Semester *Semester `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
}

// TableName 指定表名
func (CourseSemester) TableName() string { return "course_semesters" }

// ProfessorCourseSemester 授课分配（教授 × 开课）— 对应 professor_course_semesters
// course_semester_id 唯一：一个开课最多对应一位教授
type ProfessorCourseSemester struct {
	ID               uint `gorm:"primaryKey"         json:"id"`
	ProfessorID      uint `gorm:"not null"           json:"professor_id"`
	CourseSemesterID uint `gorm:"not null;uniqueIndex" json:"course_semester_id"`
}

// TableName 指定表名
func (ProfessorCourseSemester) TableName() string { return "professor_course_semesters" }
