package model

import "time"

// ContactMessage 联系我们表单留言
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null" json:"name"`
	Email     string    `gorm:"type:varchar(128);not null" json:"email"`
	Phone     *string   `gorm:"type:varchar(32)" json:"phone"`
	Subject   string    `gorm:"type:varchar(128);not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
