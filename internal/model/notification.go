package model

import "time"

// NotificationType 通知类型
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
)

// Notification 互动通知（异步尽力写入，见 service.Notifier）
type Notification struct {
	ID        string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string           `gorm:"type:varchar(36);index:idx_notif_user;not null" json:"user_id"` // 接收者
	CreatorID string           `gorm:"type:varchar(36);not null" json:"creator_id"`                   // 触发者
	Type      NotificationType `gorm:"type:varchar(16);not null" json:"type"`
	PostID    string           `gorm:"type:varchar(36);index:idx_notif_post;not null" json:"post_id"`
	CommentID *string          `gorm:"type:varchar(36);index:idx_notif_comment" json:"comment_id"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
