package dto

// ── 选课模块 DTO ──

// VerifyEnrollmentRequest 选课校验参数
type VerifyEnrollmentRequest struct {
	ProfessorCourseSemesterID uint   `form:"professor_course_semester_id" binding:"required"`
	Email                     string `form:"email"                        binding:"required"`
}

// VerifyEnrollmentResponse 选课校验结果
type VerifyEnrollmentResponse struct {
	IsEnrolled bool `json:"isEnrolled"`
}

// CreateEnrollmentRequest 导入选课请求
type CreateEnrollmentRequest struct {
	ProfessorCourseSemesterID FlexID `json:"professor_course_semester_id" binding:"required"`
	StudentEmail              string `json:"student_email"                binding:"required,email,max=254"`
}

// EnrollmentResponse 选课列表项
type EnrollmentResponse struct {
	ID                        uint   `json:"id"`
	ProfessorCourseSemesterID uint   `json:"professor_course_semester_id"`
	StudentEmail              string `json:"student_email"`
	CourseName                string `json:"course_name"`
	SemesterName              string `json:"semester_name"`
	ProfessorName             string `json:"professor_name"`
}
