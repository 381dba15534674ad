package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an operator account allowed past the login screen.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:varchar(36);primaryKey"`
	Username     string     `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
