package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, authorID string, content, image *string) (*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// List 按 created_at DESC, id DESC 返回；authorID 非空时只取该作者
	List(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, error)
	// DeleteCascade 在一个事务里删除帖子及其评论、点赞、相关通知
	DeleteCascade(ctx context.Context, postID string) error
	// CountLikes / CountComments 批量统计，返回 post_id -> count
	CountLikes(ctx context.Context, postIDs []string) (map[string]int64, error)
	CountComments(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, authorID string, content, image *string) (*model.Post, error) {
	now := time.Now()
	// UUIDv7 按时间有序，created_at 相同也能按插入先后排序
	p := &model.Post{
		ID:        uuid.Must(uuid.NewV7()).String(),
		AuthorID:  authorID,
		Content:   content,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Order("created_at DESC, id DESC")
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var res []*model.Post
	err := q.Find(&res).Error
	return res, err
}

func (r *postRepository) DeleteCascade(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", postID).Delete(&model.Post{}).Error
	})
}

type postCount struct {
	PostID string
	Cnt    int64
}

func (r *postRepository) CountLikes(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return r.countGrouped(ctx, &model.Like{}, postIDs)
}

func (r *postRepository) CountComments(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return r.countGrouped(ctx, &model.Comment{}, postIDs)
}

func (r *postRepository) countGrouped(ctx context.Context, m interface{}, postIDs []string) (map[string]int64, error) {
	res := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return res, nil
	}
	var rows []postCount
	err := r.db.WithContext(ctx).
		Model(m).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		res[row.PostID] = row.Cnt
	}
	return res, nil
}
