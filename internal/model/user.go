package model

import "time"

// User 注册用户；只保存口令哈希
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Name         string `gorm:"type:varchar(255);not null"`
	Username     string `gorm:"type:varchar(255);uniqueIndex:ux_users_username;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Posts        []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
