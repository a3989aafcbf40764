package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// SemesterHandler 学期模块 HTTP 处理器
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// List 学期列表（公开）
// GET /api/semesters
func (h *SemesterHandler) List(c *gin.Context) {
	semesters, err := h.semesterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, semesters)
}

// Create 新增学期
// POST /api/admin/semesters
func (h *SemesterHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.semesterSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.handleSemesterError(c, err)
		return
	}
	response.Created(c, id)
}

// Update 更新学期
// PUT /api/admin/semesters/:id
func (h *SemesterHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.semesterSvc.Update(c.Request.Context(), id, req.Name); err != nil {
		h.handleSemesterError(c, err)
		return
	}
	response.Message(c, "Updated")
}

// Delete 删除学期
// DELETE /api/admin/semesters/:id
func (h *SemesterHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.semesterSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSemesterError(c, err)
		return
	}
	response.Message(c, "Deleted")
}

// handleSemesterError 统一处理学期模块业务错误
func (h *SemesterHandler) handleSemesterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		response.BadRequest(c, "name is required")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, "Semester not found")
	case errors.Is(err, service.ErrSemesterNameExists):
		response.BadRequest(c, "Semester already exists")
	case errors.Is(err, service.ErrSemesterInUse):
		response.BadRequest(c, "Semester has course offerings and cannot be deleted")
	default:
		response.InternalError(c)
	}
}
