package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID             string    `gorm:"type:uuid;primary_key"`
	PostID         string    `gorm:"type:uuid;not null;index"`
	PostTitle      string    `gorm:"type:varchar(255)"`
	CommenterName  string    `gorm:"type:varchar(255)"`
	CommenterEmail string    `gorm:"type:varchar(320);not null"`
	CommenterImage string    `gorm:"type:varchar(1000)"`
	Comment        string    `gorm:"type:text;not null"`
	Feedback       *string   `gorm:"type:text"`
	PostTime       time.Time `gorm:"not null;index"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
