package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// ProfessorHandler 教授模块 HTTP 处理器（公开接口与管理端）
type ProfessorHandler struct {
	professorSvc service.ProfessorService
	ratingSvc    service.RatingService
}

// NewProfessorHandler 创建 ProfessorHandler
func NewProfessorHandler(professorSvc service.ProfessorService, ratingSvc service.RatingService) *ProfessorHandler {
	return &ProfessorHandler{professorSvc: professorSvc, ratingSvc: ratingSvc}
}

// ────────────────────── 公开接口 ──────────────────────

// Search 搜索教授
// GET /api/professors?search=
func (h *ProfessorHandler) Search(c *gin.Context) {
	var req dto.ProfessorSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.professorSvc.Search(c.Request.Context(), req.Search)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Underrated 浏览量最少的已评分教授
// GET /api/professors/underrated
func (h *ProfessorHandler) Underrated(c *gin.Context) {
	list, err := h.professorSvc.Underrated(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetDetails 教授详情
// GET /api/professors/:id/details
func (h *ProfessorHandler) GetDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.professorSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleProfessorError(c, err)
		return
	}
	response.OK(c, detail)
}

// ListOfferings 教授的授课分配（评分表单使用）
// GET /api/professors/:id/course-semesters
func (h *ProfessorHandler) ListOfferings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.professorSvc.ListOfferings(c.Request.Context(), id)
	if err != nil {
		h.handleProfessorError(c, err)
		return
	}
	response.OK(c, list)
}

// ListRatings 教授的评分列表
// GET /api/professors/:id/ratings?course_id=&semester_id=
func (h *ProfessorHandler) ListRatings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var filter dto.OfferingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.ratingSvc.ListByProfessor(c.Request.Context(), id, filter)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// RatingDistribution 评分分布
// GET /api/professors/:id/rating-distribution
func (h *ProfessorHandler) RatingDistribution(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dist, err := h.professorSvc.RatingDistribution(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dist)
}

// TagDistribution 标签分布
// GET /api/professors/:id/tag-distribution?course_id=&semester_id=
func (h *ProfessorHandler) TagDistribution(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var filter dto.OfferingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.professorSvc.TagDistribution(c.Request.Context(), id, filter)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// RecordView 记录一次浏览
// POST /api/professors/:id/view
func (h *ProfessorHandler) RecordView(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.professorSvc.RecordView(c.Request.Context(), id); err != nil {
		h.handleProfessorError(c, err)
		return
	}
	response.OK(c, dto.SuccessResponse{Success: true})
}

// ────────────────────── 管理端 ──────────────────────

// AdminList 教授列表（含院系）
// GET /api/admin/professors
func (h *ProfessorHandler) AdminList(c *gin.Context) {
	list, err := h.professorSvc.ListAdmin(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Create 新增教授
// POST /api/admin/professors
func (h *ProfessorHandler) Create(c *gin.Context) {
	var req dto.SaveProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.professorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleProfessorError(c, err)
		return
	}
	response.Created(c, id)
}

// Update 更新教授
// PUT /api/admin/professors/:id
func (h *ProfessorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SaveProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.professorSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleProfessorError(c, err)
		return
	}
	response.Message(c, "Updated")
}

// Delete 删除教授
// DELETE /api/admin/professors/:id
func (h *ProfessorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.professorSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleProfessorError(c, err)
		return
	}
	response.Message(c, "Deleted")
}

// handleProfessorError 统一处理教授模块业务错误
func (h *ProfessorHandler) handleProfessorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfessorNotFound):
		response.NotFound(c, "Professor not found")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, "Department not found")
	case errors.Is(err, service.ErrNameRequired):
		response.BadRequest(c, "name is required")
	case errors.Is(err, service.ErrProfessorInUse):
		response.BadRequest(c, "Professor is assigned to courses and cannot be deleted")
	default:
		response.InternalError(c)
	}
}
