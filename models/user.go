package models

import "time"

type User struct {
	ID       uint      `gorm:"primaryKey"`
	Username string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Password string    `gorm:"type:varchar(100);not null" json:"-"` // Don't expose password hash
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
	// IsAdmin is set at creation time; nothing consumes it yet.
	IsAdmin bool `gorm:"default:false"`
}
