package model

// ContactMessage 公开表单提交的留言，仅管理员可见
// swagger:model ContactMessage
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Subject string `gorm:"size:200" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Read    bool   `gorm:"default:false;index" json:"read"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
