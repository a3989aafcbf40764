package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Verify 校验邮箱是否选修了授课分配
// GET /api/enrollments/verify?professor_course_semester_id=&email=
func (h *EnrollmentHandler) Verify(c *gin.Context) {
	var req dto.VerifyEnrollmentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "professor_course_semester_id and email are required")
		return
	}

	enrolled, err := h.enrollmentSvc.Verify(c.Request.Context(), req.ProfessorCourseSemesterID, req.Email)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.VerifyEnrollmentResponse{IsEnrolled: enrolled})
}

// Create 导入选课记录
// POST /api/admin/enrollments
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.enrollmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.Created(c, id)
}

// ListByAssignment 授课分配下的选课记录
// GET /api/admin/enrollments/:pcs_id
func (h *EnrollmentHandler) ListByAssignment(c *gin.Context) {
	pcsID, ok := parseIDParam(c, "pcs_id")
	if !ok {
		return
	}

	list, err := h.enrollmentSvc.ListByAssignment(c.Request.Context(), pcsID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Delete 移除选课记录
// DELETE /api/admin/enrollments/:pcs_id/:student_email
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	pcsID, ok := parseIDParam(c, "pcs_id")
	if !ok {
		return
	}

	if err := h.enrollmentSvc.Delete(c.Request.Context(), pcsID, c.Param("student_email")); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.Message(c, "Removed")
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, "Professor assignment not found")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, "Enrollment not found")
	case errors.Is(err, service.ErrEnrollmentExists):
		response.BadRequest(c, "Student is already enrolled")
	case errors.Is(err, service.ErrEnrollmentHasRating):
		response.BadRequest(c, "Student has already rated this course and cannot be removed")
	default:
		response.InternalError(c)
	}
}
