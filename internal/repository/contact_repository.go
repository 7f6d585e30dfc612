package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	List(ctx context.Context, offset, limit int) ([]*model.ContactMessage, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository { return &contactRepository{db: db} }

func (r *contactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *contactRepository) List(ctx context.Context, offset, limit int) ([]*model.ContactMessage, error) {
	var res []*model.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
