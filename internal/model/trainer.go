package model

// swagger:model Trainer
type Trainer struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:200" json:"specialty"`
	Bio       string `gorm:"type:text" json:"bio"`
	Photo     string `gorm:"size:255" json:"photo"`
	Instagram string `gorm:"size:255" json:"instagram"`
	Facebook  string `gorm:"size:255" json:"facebook"`
	Visible   bool   `gorm:"default:true;index" json:"visible"`
}

func (Trainer) TableName() string {
	return "trainers"
}
