package handler

import (
	"github.com/gin-gonic/gin"

	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// TagHandler 标签模块 HTTP 处理器
type TagHandler struct {
	tagSvc service.TagService
}

// NewTagHandler 创建 TagHandler
func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc}
}

// List 全部标签
// GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, tags)
}

// Rebuild 重建教授标签汇总
// POST /api/admin/professor-tags/rebuild
func (h *TagHandler) Rebuild(c *gin.Context) {
	result, err := h.tagSvc.RebuildProfessorTags(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
