package model

// Semester 学期表 — 对应 semesters
type Semester struct {
	ID   uint   `gorm:"primaryKey"                    json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }
