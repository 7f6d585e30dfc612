package service

import (
	"context"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

// NotificationView 通知条目，附触发者摘要
type NotificationView struct {
	ID        string                 `json:"id"`
	Type      model.NotificationType `json:"type"`
	PostID    string                 `json:"post_id"`
	CommentID *string                `json:"comment_id,omitempty"`
	Read      bool                   `json:"read"`
	Creator   model.AuthorSummary    `json:"creator"`
	CreatedAt string                 `json:"created_at"`
}

// NotificationService 通知的读取与已读标记（写入见 Notifier）
type NotificationService interface {
	List(ctx context.Context, userID string, offset, limit int) ([]NotificationView, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo}
}

func (s *notificationService) List(ctx context.Context, userID string, offset, limit int) ([]NotificationView, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, err := s.repo.ListByRecipient(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	creatorIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, n := range items {
		if _, ok := seen[n.CreatorID]; !ok {
			seen[n.CreatorID] = struct{}{}
			creatorIDs = append(creatorIDs, n.CreatorID)
		}
	}
	creators, err := s.userRepo.FindByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}
	views := make([]NotificationView, 0, len(items))
	for _, n := range items {
		views = append(views, NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			PostID:    n.PostID,
			CommentID: n.CommentID,
			Read:      n.Read,
			Creator:   authorSummary(creators, n.CreatorID),
			CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return views, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
