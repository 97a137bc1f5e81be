package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	YouTubeID string    `json:"youtubeId" gorm:"column:youtube_id;size:32;not null"`
	Subject   string    `json:"subject" gorm:"size:100;not null"`
	Views     int64     `json:"views" gorm:"not null;default:0;index"`
	Featured  bool      `json:"featured" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "course_videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
