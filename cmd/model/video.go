package model

const VideoTableName = "videos"

// Video is owned by exactly one user; the owner doubles as the channel
// the video belongs to. The owner is immutable after creation.
type Video struct {
	VideoId      string  `gorm:"column:video_id;type:char(24);primaryKey" json:"video_id"`
	UserId       string  `gorm:"column:user_id;type:char(24);index:idx_video_owner" json:"user_id"`
	VideoUrl     string  `gorm:"column:video_url;type:varchar(512)" json:"video_url"`
	ThumbnailUrl string  `gorm:"column:thumbnail_url;type:varchar(512)" json:"thumbnail_url"`
	Title        string  `gorm:"column:title;type:varchar(256)" json:"title"`
	Description  string  `gorm:"column:description;type:text" json:"description"`
	Duration     float64 `gorm:"column:duration" json:"duration"`
	IsPublished  bool    `gorm:"column:is_published" json:"is_published"`
	CreatedAt    string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    string  `gorm:"column:updated_at" json:"updated_at"`
}

func (v *Video) TableName() string {
	return VideoTableName
}
