package model

// swagger:model Blog
type Blog struct {
	BaseModel
	Title     string `gorm:"size:200;not null" json:"title"`
	Excerpt   string `gorm:"size:500" json:"excerpt"`
	Content   string `gorm:"type:text" json:"content"`
	Cover     string `gorm:"size:255" json:"cover"`
	AuthorID  uint   `gorm:"index" json:"authorId"`
	Published bool   `gorm:"default:false;index" json:"published"`
}

func (Blog) TableName() string {
	return "blogs"
}
