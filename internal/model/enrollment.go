package model

// Enrollment 选课记录 — 对应 enrollments
// 由管理员预先导入，是注册与评分的前置条件
type Enrollment struct {
	ID                        uint   `gorm:"primaryKey"                             json:"id"`
	ProfessorCourseSemesterID uint   `gorm:"not null;uniqueIndex:idx_enrollment"    json:"professor_course_semester_id"`
	StudentEmail              string `gorm:"type:text;not null;uniqueIndex:idx_enrollment" json:"student_email"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
