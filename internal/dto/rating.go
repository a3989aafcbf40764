package dto

// ── 评分模块 DTO ──

// SubmitRatingRequest 提交评分请求
// review 长度与 course_type 取值在 Service 层按顺序校验
type SubmitRatingRequest struct {
	ProfessorID      FlexID   `json:"professor_id"      binding:"required"`
	CourseID         FlexID   `json:"course_id"         binding:"required"`
	SemesterID       FlexID   `json:"semester_id"       binding:"required"`
	Rating           int      `json:"rating"            binding:"required,min=1,max=5"`
	CourseDifficulty int      `json:"course_difficulty" binding:"required,min=1,max=5"`
	CourseQuality    int      `json:"course_quality"    binding:"required,min=1,max=5"`
	CourseLiking     int      `json:"course_liking"     binding:"required,min=1,max=5"`
	Review           string   `json:"review"            binding:"max=5000"`
	Grade            string   `json:"grade"             binding:"required,grade"`
	CourseType       string   `json:"course_type"`
	Tags             []FlexID `json:"tags"              binding:"omitempty,max=10,dive,required"`
}

// SubmitRatingResponse 提交评分响应
type SubmitRatingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// RatingResponse 评分列表项
type RatingResponse struct {
	ID               uint     `json:"id"`
	Rating           int      `json:"rating"`
	CourseDifficulty int      `json:"course_difficulty"`
	CourseQuality    int      `json:"course_quality"`
	CourseLiking     int      `json:"course_liking"`
	Review           string   `json:"review"`
	Grade            string   `json:"grade"`
	CourseType       string   `json:"course_type"`
	Date             string   `json:"date"`
	Email            string   `json:"email"`
	Professor        IDName   `json:"professor"`
	Course           IDName   `json:"course"`
	Semester         IDName   `json:"semester"`
	Tags             []string `json:"tags"`
}

// RatingStatsResponse 评分统计
type RatingStatsResponse struct {
	TotalReviews int64 `json:"totalReviews"`
}

// RebuildTagsResponse 教授标签重建结果
type RebuildTagsResponse struct {
	Professors int64 `json:"professors"`
	Tags       int64 `json:"tags"`
}
