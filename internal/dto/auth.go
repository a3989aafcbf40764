package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email"       binding:"required,max=254"`
	Password    string `json:"password"    binding:"required,min=6,max=72"`
	DisplayName string `json:"displayName" binding:"required,max=50"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 用户信息响应（脱敏）
// 注册响应不含 isAdmin
type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     *bool  `json:"isAdmin,omitempty"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
