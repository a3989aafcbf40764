package model

// Department 院系表 — 对应 departments
type Department struct {
	ID   uint   `gorm:"primaryKey"            json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
