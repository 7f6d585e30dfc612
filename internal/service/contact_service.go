package service

import (
	"context"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

// ContactService 联系我们表单（字段校验在 handler 的 binding 标签里完成）
type ContactService interface {
	Submit(ctx context.Context, m *model.ContactMessage) error
	List(ctx context.Context, offset, limit int) ([]*model.ContactMessage, error)
}

type contactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(ctx context.Context, m *model.ContactMessage) error {
	return s.repo.Create(ctx, m)
}

func (s *contactService) List(ctx context.Context, offset, limit int) ([]*model.ContactMessage, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, offset, limit)
}
