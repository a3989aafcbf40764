package model

// DefaultUniversity 教授与用户的默认学校
const DefaultUniversity = "University of South Florida"

// Professor 教授表 — 对应 professors
type Professor struct {
	ID           uint   `gorm:"primaryKey"                                 json:"id"`
	Name         string `gorm:"type:text;not null"                         json:"name"`
	DepartmentID uint   `gorm:"index"                                      json:"department_id"`
	University   string `gorm:"type:text;default:'University of South Florida'" json:"university"`

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Professor) TableName() string { return "professors" }

// ProfessorView 教授主页浏览计数 — 对应 professor_views
type ProfessorView struct {
	ProfessorID uint `gorm:"primaryKey;autoIncrement:false" json:"professor_id"`
	ViewCount   int  `gorm:"not null;default:0"            json:"view_count"`
}

// TableName 指定表名
func (ProfessorView) TableName() string { return "professor_views" }
