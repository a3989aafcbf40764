package dto

// ── 教授模块 DTO ──

// ProfessorSearchRequest 教授搜索参数
type ProfessorSearchRequest struct {
	Search string `form:"search" binding:"max=100"`
}

// OfferingFilter 按开课（课程 + 学期）过滤，两者同时给出才生效
type OfferingFilter struct {
	CourseID   uint `form:"course_id"`
	SemesterID uint `form:"semester_id"`
}

// ProfessorSummary 教授列表项
type ProfessorSummary struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	University      string  `json:"university"`
	AverageRating   float64 `json:"averageRating"`
	NumberOfRatings int64   `json:"numberOfRatings"`
}

// UnderratedProfessor 冷门好评教授
type UnderratedProfessor struct {
	ProfessorSummary
	ViewCount int64 `json:"viewCount"`
}

// CourseSemesterItem 教授详情中的授课条目
type CourseSemesterItem struct {
	CourseID         uint   `json:"course_id"`
	CourseName       string `json:"course_name"`
	SemesterID       uint   `json:"semester_id"`
	SemesterName     string `json:"semester_name"`
	CourseSemesterID uint   `json:"course_semester_id"`
}

// ProfessorDetailResponse 教授详情
type ProfessorDetailResponse struct {
	ID              uint                 `json:"id"`
	Name            string               `json:"name"`
	DepartmentID    uint                 `json:"department_id"`
	Department      string               `json:"department"`
	University      string               `json:"university"`
	AverageRating   float64              `json:"averageRating"`
	NumberOfRatings int64                `json:"numberOfRatings"`
	CourseSemesters []CourseSemesterItem `json:"courseSemesters"`
}

// ProfessorOfferingItem 评分表单使用的授课分配
type ProfessorOfferingItem struct {
	ProfessorCourseSemesterID uint   `json:"professor_course_semester_id"`
	CourseID                  uint   `json:"course_id"`
	CourseName                string `json:"course_name"`
	SemesterID                uint   `json:"semester_id"`
	SemesterName              string `json:"semester_name"`
}

// RatingDistributionResponse 评分分布，5..1 分别对应 awesome..awful
type RatingDistributionResponse struct {
	Awesome int64 `json:"awesome"`
	Great   int64 `json:"great"`
	Good    int64 `json:"good"`
	OK      int64 `json:"ok"`
	Awful   int64 `json:"awful"`
}

// TagCountResponse 标签分布项
type TagCountResponse struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// ── 管理端 ──

// SaveProfessorRequest 创建/更新教授请求
type SaveProfessorRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	DepartmentID FlexID `json:"department_id" binding:"required"`
}

// AdminProfessorResponse 管理端教授列表项
type AdminProfessorResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	University     string `json:"university"`
}
