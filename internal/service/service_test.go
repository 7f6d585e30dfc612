package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

type fixture struct {
	db           *gorm.DB
	posts        PostService
	interactions InteractionService
	notifs       NotificationService
	notifier     *Notifier
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{},
		&model.Like{}, &model.Notification{}, &model.ContactMessage{},
	))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifier := NewNotifier(notifRepo, 100)
	stop := notifier.Start(1)
	t.Cleanup(func() { _ = stop(context.Background()) })

	cache := NewFeedCache(nil, 0)
	return &fixture{
		db:           db,
		posts:        NewPostService(postRepo, commentRepo, likeRepo, userRepo, cache),
		interactions: NewInteractionService(postRepo, commentRepo, likeRepo, userRepo, notifier, cache),
		notifs:       NewNotificationService(notifRepo, userRepo),
		notifier:     notifier,
	}
}

func (f *fixture) seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8]),
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) seedPost(t *testing.T, authorID, content string) *PostView {
	t.Helper()
	view, err := f.posts.Create(context.Background(), authorID, &content, nil)
	require.NoError(t, err)
	return view
}

func (f *fixture) notificationCount(t *testing.T) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, f.db.Model(&model.Notification{}).Count(&cnt).Error)
	return cnt
}

// waitNotifications 等异步通知落库到指定条数
func (f *fixture) waitNotifications(t *testing.T, want int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.notificationCount(t) == want && f.notifier.QueueLen() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func likeRows(t *testing.T, db *gorm.DB, postID string) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&cnt).Error)
	return cnt
}
