package model

// Tag 描述性标签词表 — 对应 tags
type Tag struct {
	ID   uint   `gorm:"primaryKey"                    json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// TableName 指定表名
func (Tag) TableName() string { return "tags" }

// RatingTag 评分 × 标签 — 对应 rating_tags
type RatingTag struct {
	ID       uint `gorm:"primaryKey"                         json:"id"`
	RatingID uint `gorm:"not null;uniqueIndex:idx_rating_tag" json:"rating_id"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_rating_tag" json:"tag_id"`
}

// TableName 指定表名
func (RatingTag) TableName() string { return "rating_tags" }

// ProfessorTag 教授标签汇总 — 对应 professor_tags
// count 在提交带标签的评分时递增，也可由 rating_tags 全量重建
type ProfessorTag struct {
	ID          uint `gorm:"primaryKey"                            json:"id"`
	ProfessorID uint `gorm:"not null;uniqueIndex:idx_professor_tag" json:"professor_id"`
	TagID       uint `gorm:"not null;uniqueIndex:idx_professor_tag" json:"tag_id"`
	Count       int  `gorm:"default:1"                             json:"count"`
}

// TableName 指定表名
func (ProfessorTag) TableName() string { return "professor_tags" }
