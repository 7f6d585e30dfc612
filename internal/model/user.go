package model

import "time"

// User 用户主体（注册/会话由外部认证服务负责，这里只读）
type User struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string  `gorm:"type:varchar(64);not null" json:"name"`
	Email     string  `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	Image     *string `gorm:"type:varchar(512)" json:"image"`
	Password  string  `gorm:"type:varchar(128)" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// AuthorSummary 帖子/评论视图里携带的作者摘要
type AuthorSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

func (u *User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Name: u.Name, Image: u.Image}
}
