package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Name      string `gorm:"type:varchar(100);index;not null"`
	CreatedAt time.Time
}

func (TagModel) TableName() string {
	return "tags"
}

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type AnnouncementModel struct {
	ID          string    `gorm:"type:uuid;primary_key"`
	AuthorName  string    `gorm:"type:varchar(255)"`
	AuthorEmail string    `gorm:"type:varchar(320)"`
	AuthorImage string    `gorm:"type:varchar(1000)"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	PostTime    time.Time `gorm:"not null;index"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}

func (a *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
