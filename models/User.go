package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email string `gorm:"unique"`
	PasswordHash string
	DisplayName string `gorm:"unique"`
}
