package model

import "time"

// Post 社区帖子（content 与 image 至少一个非空）
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null" json:"author_id"`
	Content   *string   `gorm:"type:text" json:"content"`
	Image     *string   `gorm:"type:varchar(512)" json:"image"`
	CreatedAt time.Time `gorm:"index:idx_post_created" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Post) TableName() string { return "posts" }
