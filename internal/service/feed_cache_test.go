package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/agrifeed/internal/repository"
)

func newTestCache(t *testing.T) (*FeedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFeedCache(client, 30*time.Second), mr
}

func TestFeedCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	content := "cached"
	views := []PostView{{ID: "p1", Content: &content, Comments: []CommentView{}}}
	cache.Set(ctx, views)

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	cache.Invalidate(ctx)
	_, ok = cache.Get(ctx)
	assert.False(t, ok)
}

func TestFeedCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cache := NewFeedCache(nil, 0)
	cache.Set(ctx, []PostView{{ID: "p1"}})
	_, ok := cache.Get(ctx)
	assert.False(t, ok)
	cache.Invalidate(ctx)
}

// 匿名信息流命中缓存；任何变更后失效
func TestGlobalFeedUsesCacheForAnonymous(t *testing.T) {
	db := setupDB(t)
	cache, mr := newTestCache(t)

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)
	posts := NewPostService(postRepo, commentRepo, likeRepo, userRepo, cache)

	f := &fixture{db: db, posts: posts}
	author := f.seedUser(t, "author")
	ctx := context.Background()

	content := "first"
	_, err := posts.Create(ctx, author.ID, &content, nil)
	require.NoError(t, err)

	feed, err := posts.GlobalFeed(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, mr.Exists("feed:global"))

	// 绕过 service 直接写库，缓存里仍是旧视图
	second := "second"
	_, err = postRepo.Create(ctx, author.ID, &second, nil)
	require.NoError(t, err)

	feed, err = posts.GlobalFeed(ctx, "")
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	// 经 service 的变更使缓存失效
	third := "third"
	_, err = posts.Create(ctx, author.ID, &third, nil)
	require.NoError(t, err)
	assert.False(t, mr.Exists("feed:global"))

	feed, err = posts.GlobalFeed(ctx, "")
	require.NoError(t, err)
	assert.Len(t, feed, 3)
}
