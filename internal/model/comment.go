package model

import "time"

// CommentMaxLen 评论长度上限（字符数）
const CommentMaxLen = 500

// Comment 帖子评论
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null" json:"post_id"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_comment_author;not null" json:"author_id"`
	Content   string    `gorm:"type:varchar(500);not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_comment_post_created" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
