package domain

import (
	"time"
)

type User struct {
	ID                    uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserName              string     `json:"userName" gorm:"size:16;uniqueIndex;not null"`
	Email                 string     `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword        string     `json:"-" gorm:"size:72;not null"`
	RefreshToken          *string    `json:"-" gorm:"size:36;index"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
