package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/agrifeed/internal/model"
)

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "author")

	_, err := f.posts.Create(ctx, author.ID, nil, nil)
	assert.ErrorIs(t, err, ErrContentRequired)

	empty := ""
	_, err = f.posts.Create(ctx, author.ID, &empty, nil)
	assert.ErrorIs(t, err, ErrContentRequired)

	long := strings.Repeat("字", PostContentMaxLen+1)
	_, err = f.posts.Create(ctx, author.ID, &long, nil)
	assert.ErrorIs(t, err, ErrContentTooLong)

	// 只有图片也算有效
	img := "https://cdn.example.com/field.jpg"
	view, err := f.posts.Create(ctx, author.ID, nil, &img)
	require.NoError(t, err)
	assert.Nil(t, view.Content)
	require.NotNil(t, view.Image)
	assert.Equal(t, img, *view.Image)
	assert.EqualValues(t, 0, view.LikeCount)
	assert.EqualValues(t, 0, view.CommentCount)
	assert.Equal(t, author.ID, view.Author.ID)
	assert.Equal(t, "author", view.Author.Name)
}

func TestGlobalFeedOrderNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "author")

	ids := make([]string, 6)
	for i := range ids {
		ids[i] = f.seedPost(t, author.ID, fmt.Sprintf("post %d", i)).ID
	}

	feed, err := f.posts.GlobalFeed(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, len(ids))
	for i := range ids {
		assert.Equal(t, ids[len(ids)-1-i], feed[i].ID, "position %d", i)
	}
}

func TestGlobalFeedAnonymousNeverLiked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "author")
	liker := f.seedUser(t, "liker")
	post := f.seedPost(t, author.ID, "liked post")

	_, _, err := f.interactions.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)

	feed, err := f.posts.GlobalFeed(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].IsLiked)
	assert.EqualValues(t, 1, feed[0].LikeCount)
}

func TestGlobalFeedViewerLikeState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "author")
	liker := f.seedUser(t, "liker")
	other := f.seedUser(t, "other")
	liked := f.seedPost(t, author.ID, "liked")
	plain := f.seedPost(t, author.ID, "plain")

	_, _, err := f.interactions.ToggleLike(ctx, liked.ID, liker.ID)
	require.NoError(t, err)

	feed, err := f.posts.GlobalFeed(ctx, liker.ID)
	require.NoError(t, err)
	byID := map[string]PostView{}
	for _, v := range feed {
		byID[v.ID] = v
	}
	assert.True(t, byID[liked.ID].IsLiked)
	assert.False(t, byID[plain.ID].IsLiked)

	// 其他 viewer 看不到别人点赞的状态
	feed, err = f.posts.GlobalFeed(ctx, other.ID)
	require.NoError(t, err)
	for _, v := range feed {
		assert.False(t, v.IsLiked)
	}
}

func TestGlobalFeedCommentPrefix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "author")
	commenter := f.seedUser(t, "commenter")
	post := f.seedPost(t, author.ID, "busy post")

	for i := 0; i < 8; i++ {
		_, err := f.interactions.AddComment(ctx, post.ID, commenter.ID, fmt.Sprintf("c%d", i))
		require.NoError(t, err)
	}

	feed, err := f.posts.GlobalFeed(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.EqualValues(t, 8, feed[0].CommentCount)
	require.Len(t, feed[0].Comments, 5)
	// 前缀取最新 5 条
	assert.Equal(t, "c7", feed[0].Comments[0].Content)
	assert.Equal(t, "c3", feed[0].Comments[4].Content)
	assert.Equal(t, "commenter", feed[0].Comments[0].Author.Name)
}

func TestUserPostsFiltersByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedUser(t, "a")
	b := f.seedUser(t, "b")
	f.seedPost(t, a.ID, "by a 1")
	f.seedPost(t, b.ID, "by b")
	f.seedPost(t, a.ID, "by a 2")

	posts, err := f.posts.UserPosts(ctx, a.ID, "")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, a.ID, p.Author.ID)
	}
}

func TestDeletePostOwnershipAndCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "author")
	other := f.seedUser(t, "other")
	post := f.seedPost(t, author.ID, "to be deleted")

	_, _, err := f.interactions.ToggleLike(ctx, post.ID, other.ID)
	require.NoError(t, err)
	_, err = f.interactions.AddComment(ctx, post.ID, other.ID, "a comment")
	require.NoError(t, err)
	f.waitNotifications(t, 2)

	assert.ErrorIs(t, f.posts.Delete(ctx, post.ID, other.ID), ErrNotOwner)
	assert.ErrorIs(t, f.posts.Delete(ctx, "missing", author.ID), ErrNotFound)

	require.NoError(t, f.posts.Delete(ctx, post.ID, author.ID))

	// 级联后不留孤儿行
	for _, m := range []interface{}{&model.Post{}, &model.Comment{}, &model.Like{}, &model.Notification{}} {
		var cnt int64
		require.NoError(t, f.db.Model(m).Count(&cnt).Error)
		assert.EqualValues(t, 0, cnt, "%T", m)
	}
}
