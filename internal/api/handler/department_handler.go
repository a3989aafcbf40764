package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// DepartmentHandler 院系模块 HTTP 处理器（管理端）
type DepartmentHandler struct {
	departmentSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(departmentSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentSvc: departmentSvc}
}

// List 院系列表
// GET /api/admin/departments
func (h *DepartmentHandler) List(c *gin.Context) {
	list, err := h.departmentSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Create 新增院系
// POST /api/admin/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.departmentSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.Created(c, id)
}

// Update 更新院系
// PUT /api/admin/departments/:id
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.departmentSvc.Update(c.Request.Context(), id, req.Name); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.Message(c, "Updated")
}

// Delete 删除院系
// DELETE /api/admin/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.departmentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.Message(c, "Deleted")
}

func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		response.BadRequest(c, "name is required")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, "Department not found")
	case errors.Is(err, service.ErrDepartmentNameExists):
		response.BadRequest(c, "Department already exists")
	case errors.Is(err, service.ErrDepartmentInUse):
		response.BadRequest(c, "Department has professors and cannot be deleted")
	default:
		response.InternalError(c)
	}
}
