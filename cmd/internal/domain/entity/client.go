package entity

import "time"

type Client struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null"` // References: users(id)
	Name      string `gorm:"not null"`
	Email     *string
	Phone     *string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
