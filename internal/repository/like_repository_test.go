package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
)

func setupRepoDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}, &model.Notification{}); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLikeUniquePair(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, created)

	// 重复插入不报错也不新增
	created, err = repo.Create(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, created)

	cnt, err := repo.CountByPost(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, cnt)

	// 不同用户不受唯一键影响
	created, err = repo.Create(ctx, "u2", "p1")
	require.NoError(t, err)
	assert.True(t, created)

	deleted, err := repo.Delete(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestLikedSet(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	_, _ = repo.Create(ctx, "viewer", "p1")
	_, _ = repo.Create(ctx, "viewer", "p3")
	_, _ = repo.Create(ctx, "someone-else", "p2")

	set, err := repo.LikedSet(ctx, "viewer", []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.True(t, set["p1"])
	assert.False(t, set["p2"])
	assert.True(t, set["p3"])

	set, err = repo.LikedSet(ctx, "viewer", nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestNotificationOrderUnreadFirst(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Notification{
			UserID: "u1", CreatorID: "c", Type: model.NotificationLike, PostID: fmt.Sprintf("p%d", i),
		}))
	}
	require.NoError(t, repo.MarkAllRead(ctx, "u1"))
	require.NoError(t, repo.Create(ctx, &model.Notification{
		UserID: "u1", CreatorID: "c", Type: model.NotificationComment, PostID: "fresh",
	}))

	items, err := repo.ListByRecipient(ctx, "u1", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.False(t, items[0].Read)
	assert.Equal(t, "fresh", items[0].PostID)

	unread, err := repo.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func BenchmarkLikeToggleWrite(b *testing.B) {
	db := setupRepoDB(b)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	// 预创建部分用户与帖子
	users := make([]string, 200)
	for i := range users {
		users[i] = fmt.Sprintf("u%04d", i)
	}
	posts := make([]string, 50)
	for i := range posts {
		posts[i] = fmt.Sprintf("p%04d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := users[rand.Intn(len(users))]
		p := posts[rand.Intn(len(posts))]
		if exists, _ := repo.Exists(ctx, u, p); exists {
			_, _ = repo.Delete(ctx, u, p)
		} else {
			_, _ = repo.Create(ctx, u, p)
		}
	}
}
