package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

// PostContentMaxLen 帖子正文长度上限（字符数）
const PostContentMaxLen = 2000

// PostService 帖子的创建、信息流读取与删除
type PostService interface {
	Create(ctx context.Context, authorID string, content, image *string) (*PostView, error)
	// GlobalFeed viewerID 为空表示匿名访问，isLiked 一律为 false
	GlobalFeed(ctx context.Context, viewerID string) ([]PostView, error)
	UserPosts(ctx context.Context, targetUserID, viewerID string) ([]PostView, error)
	Delete(ctx context.Context, postID, callerID string) error
}

type postService struct {
	feedAssembler
	cache *FeedCache
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	cache *FeedCache,
) PostService {
	return &postService{
		feedAssembler: feedAssembler{
			postRepo:    postRepo,
			commentRepo: commentRepo,
			likeRepo:    likeRepo,
			userRepo:    userRepo,
		},
		cache: cache,
	}
}

func (s *postService) Create(ctx context.Context, authorID string, content, image *string) (*PostView, error) {
	if err := validatePostContent(content, image); err != nil {
		return nil, err
	}
	post, err := s.postRepo.Create(ctx, authorID, content, image)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	summary := model.AuthorSummary{ID: authorID}
	if author != nil {
		summary = author.Summary()
	}
	return &PostView{
		ID:        post.ID,
		Content:   post.Content,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
		Author:    summary,
		Comments:  []CommentView{},
	}, nil
}

func (s *postService) GlobalFeed(ctx context.Context, viewerID string) ([]PostView, error) {
	// 匿名视图与 viewer 无关，可整体缓存
	if viewerID == "" {
		if views, ok := s.cache.Get(ctx); ok {
			return views, nil
		}
	}
	posts, err := s.postRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	views, err := s.assemble(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	if viewerID == "" {
		s.cache.Set(ctx, views)
	}
	return views, nil
}

func (s *postService) UserPosts(ctx context.Context, targetUserID, viewerID string) ([]PostView, error) {
	posts, err := s.postRepo.List(ctx, targetUserID, 0, 0)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

func (s *postService) Delete(ctx context.Context, postID, callerID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.AuthorID != callerID {
		return ErrNotOwner
	}
	if err := s.postRepo.DeleteCascade(ctx, postID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func validatePostContent(content, image *string) error {
	hasText := content != nil && *content != ""
	hasImage := image != nil && *image != ""
	if !hasText && !hasImage {
		return ErrContentRequired
	}
	if hasText && utf8.RuneCountInString(*content) > PostContentMaxLen {
		return ErrContentTooLong
	}
	return nil
}
