package dto

// ── 课程与开课 DTO ──

// TopRatedCourse 高分课程
type TopRatedCourse struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	AverageQuality    float64 `json:"averageQuality"`
	AverageDifficulty float64 `json:"averageDifficulty"`
	AverageLiking     float64 `json:"averageLiking"`
	NumberOfRatings   int64   `json:"numberOfRatings"`
}

// CreateCourseSemesterRequest 开课请求
type CreateCourseSemesterRequest struct {
	CourseID   FlexID `json:"course_id"   binding:"required"`
	SemesterID FlexID `json:"semester_id" binding:"required"`
}

// CourseSemesterResponse 管理端开课列表项
type CourseSemesterResponse struct {
	ID            uint   `json:"id"`
	CourseID      uint   `json:"course_id"`
	CourseName    string `json:"course_name"`
	SemesterID    uint   `json:"semester_id"`
	SemesterName  string `json:"semester_name"`
	ProfessorID   *uint  `json:"professor_id"`
	ProfessorName string `json:"professor_name"`
}

// AssignProfessorRequest 分配授课教授请求
type AssignProfessorRequest struct {
	ProfessorID      FlexID `json:"professor_id"       binding:"required"`
	CourseSemesterID FlexID `json:"course_semester_id" binding:"required"`
}
