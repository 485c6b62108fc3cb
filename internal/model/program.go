package model

// Program 线下训练项目（非课程，无报名状态机）
// swagger:model Program
type Program struct {
	BaseModel
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Schedule    string  `gorm:"size:200" json:"schedule"`
	Price       float64 `gorm:"default:0" json:"price"`
	Image       string  `gorm:"size:255" json:"image"`
	Active      bool    `gorm:"default:true;index" json:"active"`
}

func (Program) TableName() string {
	return "programs"
}
