package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

// InteractionService 点赞与评论。通知经 Notifier 异步尽力写入，
// 与主写入不在同一事务里（通知只是提示性数据）。
type InteractionService interface {
	// ToggleLike 幂等翻转，返回翻转后的状态与实时点赞数
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likeCount int64, err error)
	AddComment(ctx context.Context, postID, authorID, content string) (*CommentView, error)
	// DeleteComment 评论作者或帖子作者均可删除
	DeleteComment(ctx context.Context, commentID, callerID string) error
	// Comments 信息流 5 条前缀之外的分页读取
	Comments(ctx context.Context, postID string, offset, limit int) ([]CommentView, error)
}

type interactionService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	notifier    *Notifier
	cache       *FeedCache
}

func NewInteractionService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
	cache *FeedCache,
) InteractionService {
	return &interactionService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		cache:       cache,
	}
}

func (s *interactionService) ToggleLike(ctx context.Context, postID, userID string) (bool, int64, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	exists, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}

	var liked bool
	if exists {
		if _, err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
			return false, 0, err
		}
		liked = false
	} else {
		created, err := s.likeRepo.Create(ctx, userID, postID)
		if err != nil {
			return false, 0, err
		}
		if created {
			liked = true
			if post.AuthorID != userID {
				s.notifier.Enqueue(&model.Notification{
					UserID:    post.AuthorID,
					CreatorID: userID,
					Type:      model.NotificationLike,
					PostID:    postID,
				})
			}
		} else {
			// 与并发的同键插入输了竞争：唯一键已存在，按翻转到取消赞处理
			if _, err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
				return false, 0, err
			}
			liked = false
		}
	}

	// 重新统计而不是在内存里加减，避免并发翻转下计数漂移
	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	s.cache.Invalidate(ctx)
	return liked, count, nil
}

func (s *interactionService) AddComment(ctx context.Context, postID, authorID, content string) (*CommentView, error) {
	n := utf8.RuneCountInString(content)
	if n < 1 || n > model.CommentMaxLen {
		return nil, ErrCommentLength
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment, err := s.commentRepo.Create(ctx, postID, authorID, content)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		commentID := comment.ID
		s.notifier.Enqueue(&model.Notification{
			UserID:    post.AuthorID,
			CreatorID: authorID,
			Type:      model.NotificationComment,
			PostID:    postID,
			CommentID: &commentID,
		})
	}
	s.cache.Invalidate(ctx)

	authors, err := s.userRepo.FindByIDs(ctx, []string{authorID})
	if err != nil {
		return nil, err
	}
	view := commentViews([]*model.Comment{comment}, authors)
	return &view[0], nil
}

func (s *interactionService) DeleteComment(ctx context.Context, commentID, callerID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	post, err := s.postRepo.FindByID(ctx, comment.PostID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	// 双重归属：评论作者或帖子作者均可删，其余一律拒绝
	allowed := callerID == comment.AuthorID || (post != nil && callerID == post.AuthorID)
	if !allowed {
		return ErrNotOwner
	}
	if err := s.commentRepo.DeleteCascade(ctx, commentID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *interactionService) Comments(ctx context.Context, postID string, offset, limit int) ([]CommentView, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, offset, limit)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]string, 0, len(comments))
	seen := make(map[string]struct{})
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	return commentViews(comments, authors), nil
}
