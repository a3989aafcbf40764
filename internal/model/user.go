package model

// User 用户表 — 对应 users
type User struct {
	ID          uint   `gorm:"primaryKey"                    json:"id"`
	Email       string `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password    string `gorm:"type:text;not null"            json:"-"` // bcrypt 哈希
	DisplayName string `gorm:"type:text;not null"            json:"display_name"`
	University  string `gorm:"type:text;default:'University of South Florida'" json:"university"`
	IsAdmin     bool   `gorm:"not null;default:false"        json:"is_admin"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
