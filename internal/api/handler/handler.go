package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/api/middleware"
	"profguide/backend/internal/api/validation"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Professor  *ProfessorHandler
	Course     *CourseHandler
	Department *DepartmentHandler
	Semester   *SemesterHandler
	Offering   *OfferingHandler
	Enrollment *EnrollmentHandler
	Rating     *RatingHandler
	Tag        *TagHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Professor:  NewProfessorHandler(svc.Professor, svc.Rating),
		Course:     NewCourseHandler(svc.Course),
		Department: NewDepartmentHandler(svc.Department),
		Semester:   NewSemesterHandler(svc.Semester),
		Offering:   NewOfferingHandler(svc.Offering, svc.Professor),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Rating:     NewRatingHandler(svc.Rating),
		Tag:        NewTagHandler(svc.Tag),
		Export:     NewExportHandler(svc.Export),
	}
}

// parseIDParam 解析路径参数中的正整数 ID，失败时写入 400
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindFailed 写入绑定/校验失败的 400 响应
func bindFailed(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	response.BadRequest(c, validation.Message(err))
}
