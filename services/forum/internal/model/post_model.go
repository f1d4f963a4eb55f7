package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string    `gorm:"type:uuid;primary_key"`
	AuthorName  string    `gorm:"type:varchar(255)"`
	AuthorEmail string    `gorm:"type:varchar(320);not null;index"`
	AuthorImage string    `gorm:"type:varchar(1000)"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Tag         string    `gorm:"type:varchar(100);index"`
	PostTime    time.Time `gorm:"not null;index"`
	Upvote      int64     `gorm:"not null;default:0"`
	Downvote    int64     `gorm:"not null;default:0"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
