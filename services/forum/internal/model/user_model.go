package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255)"`
	Email     string    `gorm:"type:varchar(320);uniqueIndex;not null"`
	Image     string    `gorm:"type:varchar(1000)"`
	Role      string    `gorm:"type:varchar(20);not null;default:'User'"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Regular'"`
	Warning   string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
