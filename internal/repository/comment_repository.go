package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, postID, authorID, content string) (*model.Comment, error)
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByPost 最新在前
	ListByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error)
	// DeleteCascade 删除评论及引用它的通知
	DeleteCascade(ctx context.Context, commentID string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, postID, authorID, content string) (*model.Comment, error) {
	c := &model.Comment{
		ID:       uuid.Must(uuid.NewV7()).String(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *commentRepository) DeleteCascade(ctx context.Context, commentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", commentID).Delete(&model.Comment{}).Error
	})
}
