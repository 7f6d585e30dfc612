package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
)

func TestNotifierWritesAsync(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewNotificationRepository(db)
	n := NewNotifier(repo, 10)
	stop := n.Start(2)
	defer func() { _ = stop(context.Background()) }()

	n.Enqueue(&model.Notification{
		UserID:    "recipient",
		CreatorID: "actor",
		Type:      model.NotificationLike,
		PostID:    "p1",
	})

	require.Eventually(t, func() bool {
		var cnt int64
		_ = db.Model(&model.Notification{}).Count(&cnt).Error
		return cnt == 1
	}, 2*time.Second, 10*time.Millisecond)

	items, err := repo.ListByRecipient(context.Background(), "recipient", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "actor", items[0].CreatorID)
	assert.False(t, items[0].Read)
}

// 队列满丢弃而不是阻塞调用方
func TestNotifierDropsWhenFull(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewNotificationRepository(db)
	n := NewNotifier(repo, 1)
	// 不启动 worker，塞满后继续入队不应卡住

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			n.Enqueue(&model.Notification{UserID: "u", CreatorID: "c", Type: model.NotificationLike, PostID: "p"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on full queue")
	}
	assert.Equal(t, 1, n.QueueLen())
}
