package model

import "time"

// Like 点赞关系（用户 × 帖子）
type Like struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	UserID string `gorm:"type:varchar(36);index:idx_like_user;index:idx_like_pair,unique;not null"`
	PostID string `gorm:"type:varchar(36);not null;index:idx_like_post;index:idx_like_pair,unique"`
	// 复合唯一键，同一用户对同一帖子至多一条
	// idx_like_pair = (user_id, post_id)
	CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }
