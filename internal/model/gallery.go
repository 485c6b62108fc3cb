package model

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// swagger:model GalleryItem
type GalleryItem struct {
	BaseModel
	Title     string    `gorm:"size:200" json:"title"`
	Type      MediaType `gorm:"size:10;default:'image'" json:"type"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	Thumbnail string    `gorm:"size:255" json:"thumbnail"`
	Duration  float64   `gorm:"default:0" json:"duration"` // 视频时长（秒），图片为 0
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}
