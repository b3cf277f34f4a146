package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string     `gorm:"uniqueIndex;size:100;not null"`
	Email     string     `gorm:"uniqueIndex;size:255;not null"`
	Password  string     `gorm:"not null"` // hex PBKDF2 digest
	Salt      []byte     `gorm:"not null"`
	Age       int        `gorm:"default:0"`
	Role      string     `gorm:"default:'LEARNER'"` // LEARNER, TEACHER
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`
}
