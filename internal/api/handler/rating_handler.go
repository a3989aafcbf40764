package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"profguide/backend/internal/dto"
	"profguide/backend/internal/service"
	"profguide/backend/pkg/response"
)

// RatingHandler 评分模块 HTTP 处理器
type RatingHandler struct {
	ratingSvc service.RatingService
}

// NewRatingHandler 创建 RatingHandler
func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

// Submit 提交评分（需登录）
// POST /api/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	id, err := h.ratingSvc.Submit(c.Request.Context(), email, &req)
	if err != nil {
		h.handleRatingError(c, err)
		return
	}

	response.OK(c, dto.SubmitRatingResponse{
		Success: true,
		Message: "Rating submitted successfully",
		ID:      id,
	})
}

// Stats 评分总数
// GET /api/ratings/stats
func (h *RatingHandler) Stats(c *gin.Context) {
	stats, err := h.ratingSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// handleRatingError 统一处理评分模块业务错误
func (h *RatingHandler) handleRatingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewTooShort):
		response.BadRequest(c, "Review must be at least 100 characters long")
	case errors.Is(err, service.ErrInvalidCourseType):
		response.BadRequest(c, "Course type must be either online or offline")
	case errors.Is(err, service.ErrOfferingNotFound):
		response.NotFound(c, "Course-professor combination not found")
	case errors.Is(err, service.ErrStudentNotEnrolled):
		response.Forbidden(c, "Student not enrolled in this course")
	case errors.Is(err, service.ErrAlreadyRated):
		response.BadRequest(c, "You have already submitted a rating for this course. You can only submit one rating per course.")
	case errors.Is(err, service.ErrUnknownTag):
		response.BadRequest(c, "Unknown tag")
	default:
		response.InternalError(c)
	}
}
