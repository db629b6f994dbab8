package models

// Relationship is a directed follow edge. The composite unique index keeps
// a (from, to) pair from existing twice.
type Relationship struct {
	ID         uint `gorm:"primaryKey"`
	FromUserID uint `gorm:"uniqueIndex:idx_follow_edge;not null"`
	ToUserID   uint `gorm:"uniqueIndex:idx_follow_edge;not null"`
	FromUser   User `gorm:"foreignKey:FromUserID"`
	ToUser     User `gorm:"foreignKey:ToUserID"`
}
