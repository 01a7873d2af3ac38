package model

import "time"

// Post 博文；UserID 创建后不再变更
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	UserID    string    `gorm:"type:varchar(36);index:idx_post_user;not null"`
	CreatedAt time.Time `gorm:"index:idx_post_created"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }

// Update 只修改标题与正文
func (p *Post) Update(title, content string) {
	p.Title = title
	p.Content = content
}
