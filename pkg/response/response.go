package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构（前端读取 error 字段展示）
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 无返回数据的写操作确认
type MessageBody struct {
	Message string `json:"message"`
}

// IDBody 新建记录响应
type IDBody struct {
	ID uint `json:"id"`
}

// ── 成功响应 ──

// OK 200 直接输出数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 返回新记录 ID
func Created(c *gin.Context, id uint) {
	c.JSON(http.StatusCreated, IDBody{ID: id})
}

// Message 200 通用确认，如 Updated / Deleted
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests, please try again later")
}

// InternalError 500，不向客户端暴露底层错误
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Server error")
}
