package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// List 课程列表
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, courses)
}

// TopRated 高分课程
// GET /api/courses/top-rated
func (h *CourseHandler) TopRated(c *gin.Context) {
	courses, err := h.courseSvc.TopRated(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, courses)
}

// Available 指定学期尚未开设的课程
// GET /api/admin/available-courses/:semester_id
func (h *CourseHandler) Available(c *gin.Context) {
	semesterID, ok := parseIDParam(c, "semester_id")
	if !ok {
		return
	}

	courses, err := h.courseSvc.Available(c.Request.Context(), semesterID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, courses)
}

// Create 新增课程
// POST /api/admin/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.courseSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, id)
}

// Update 更新课程
// PUT /api/admin/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.courseSvc.Update(c.Request.Context(), id, req.Name); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Message(c, "Updated")
}

// Delete 删除课程
// DELETE /api/admin/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Message(c, "Deleted")
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		response.BadRequest(c, "name is required")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, "Course not found")
	case errors.Is(err, service.ErrCourseNameExists):
		response.BadRequest(c, "Course already exists")
	case errors.Is(err, service.ErrCourseInUse):
		response.BadRequest(c, "Course is offered in a semester and cannot be deleted")
	default:
		response.InternalError(c)
	}
}
