package service

import (
	"context"
	"time"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

// feedCommentPrefix 信息流里每个帖子预取的评论条数，更多评论走分页接口
const feedCommentPrefix = 5

// PostView 信息流条目：计数永远由子表实时统计得出，不落冗余计数列
type PostView struct {
	ID           string              `json:"id"`
	Content      *string             `json:"content"`
	Image        *string             `json:"image"`
	CreatedAt    time.Time           `json:"created_at"`
	Author       model.AuthorSummary `json:"author"`
	LikeCount    int64               `json:"like_count"`
	CommentCount int64               `json:"comment_count"`
	IsLiked      bool                `json:"is_liked"`
	Comments     []CommentView       `json:"comments"`
}

type CommentView struct {
	ID        string              `json:"id"`
	PostID    string              `json:"post_id"`
	Content   string              `json:"content"`
	CreatedAt time.Time           `json:"created_at"`
	Author    model.AuthorSummary `json:"author"`
}

// feedAssembler 组装信息流：批量补计数、viewer 点赞状态与评论前缀
type feedAssembler struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
}

func (a *feedAssembler) assemble(ctx context.Context, posts []*model.Post, viewerID string) ([]PostView, error) {
	views := make([]PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := a.postRepo.CountLikes(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := a.postRepo.CountComments(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	liked := map[string]bool{}
	if viewerID != "" {
		liked, err = a.likeRepo.LikedSet(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	// 先收齐评论前缀，作者查询一次批量补齐
	prefixes := make(map[string][]*model.Comment, len(posts))
	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]struct{})
	collect := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			authorIDs = append(authorIDs, id)
		}
	}
	for _, p := range posts {
		collect(p.AuthorID)
		cs, err := a.commentRepo.ListByPost(ctx, p.ID, 0, feedCommentPrefix)
		if err != nil {
			return nil, err
		}
		prefixes[p.ID] = cs
		for _, c := range cs {
			collect(c.AuthorID)
		}
	}
	authors, err := a.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		v := PostView{
			ID:           p.ID,
			Content:      p.Content,
			Image:        p.Image,
			CreatedAt:    p.CreatedAt,
			Author:       authorSummary(authors, p.AuthorID),
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			IsLiked:      liked[p.ID],
			Comments:     commentViews(prefixes[p.ID], authors),
		}
		views = append(views, v)
	}
	return views, nil
}

func commentViews(comments []*model.Comment, authors map[string]*model.User) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    authorSummary(authors, c.AuthorID),
		})
	}
	return out
}

func authorSummary(authors map[string]*model.User, id string) model.AuthorSummary {
	if u, ok := authors[id]; ok {
		return u.Summary()
	}
	// 作者行缺失（脏数据）时退化为只带 ID 的摘要
	return model.AuthorSummary{ID: id}
}
