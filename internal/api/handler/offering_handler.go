package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// OfferingHandler 开课与授课分配 HTTP 处理器（管理端）
type OfferingHandler struct {
	offeringSvc  service.OfferingService
	professorSvc service.ProfessorService
}

// NewOfferingHandler 创建 OfferingHandler
func NewOfferingHandler(offeringSvc service.OfferingService, professorSvc service.ProfessorService) *OfferingHandler {
	return &OfferingHandler{offeringSvc: offeringSvc, professorSvc: professorSvc}
}

// ────────────────────── 开课 ──────────────────────

// ListCourseSemesters 开课列表
// GET /api/admin/course-semesters
func (h *OfferingHandler) ListCourseSemesters(c *gin.Context) {
	list, err := h.offeringSvc.ListCourseSemesters(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// CreateCourseSemester 开课
// POST /api/admin/course-semesters
func (h *OfferingHandler) CreateCourseSemester(c *gin.Context) {
	var req dto.CreateCourseSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.offeringSvc.CreateCourseSemester(c.Request.Context(), &req)
	if err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.Created(c, id)
}

// DeleteCourseSemester 撤销开课
// DELETE /api/admin/course-semesters/:id
func (h *OfferingHandler) DeleteCourseSemester(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.offeringSvc.DeleteCourseSemester(c.Request.Context(), id); err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.Message(c, "Deleted")
}

// ────────────────────── 授课分配 ──────────────────────

// AssignProfessor 为开课分配教授
// POST /api/admin/professor-course-semesters
func (h *OfferingHandler) AssignProfessor(c *gin.Context) {
	var req dto.AssignProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.offeringSvc.AssignProfessor(c.Request.Context(), &req)
	if err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.Created(c, id)
}

// UnassignProfessor 移除开课的授课教授
// DELETE /api/admin/professor-course-semesters/:course_semester_id
func (h *OfferingHandler) UnassignProfessor(c *gin.Context) {
	csID, ok := parseIDParam(c, "course_semester_id")
	if !ok {
		return
	}

	if err := h.offeringSvc.UnassignProfessor(c.Request.Context(), csID); err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.Message(c, "Removed")
}

// AvailableProfessors 未分配到该开课的教授
// GET /api/admin/available-professors/:course_semester_id
func (h *OfferingHandler) AvailableProfessors(c *gin.Context) {
	csID, ok := parseIDParam(c, "course_semester_id")
	if !ok {
		return
	}

	list, err := h.professorSvc.Available(c.Request.Context(), csID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// handleOfferingError 统一处理开课模块业务错误
func (h *OfferingHandler) handleOfferingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, "Course not found")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, "Semester not found")
	case errors.Is(err, service.ErrProfessorNotFound):
		response.NotFound(c, "Professor not found")
	case errors.Is(err, service.ErrCourseSemesterNotFound):
		response.NotFound(c, "Course offering not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, "Professor assignment not found")
	case errors.Is(err, service.ErrCourseSemesterExists):
		response.BadRequest(c, "Course is already offered in this semester")
	case errors.Is(err, service.ErrCourseSemesterAssigned):
		response.BadRequest(c, "Course offering has an assigned professor and cannot be deleted")
	case errors.Is(err, service.ErrAssignmentExists):
		response.BadRequest(c, "A professor is already assigned to this course offering")
	case errors.Is(err, service.ErrAssignmentInUse):
		response.BadRequest(c, "Assignment has enrollments or ratings and cannot be removed")
	default:
		response.InternalError(c)
	}
}
