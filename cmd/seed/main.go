package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/agrifeed/config"
	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
	"github.com/d60-Lab/agrifeed/internal/service"
	"github.com/d60-Lab/agrifeed/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// 本地联调用的种子数据：N 个用户，每人一帖，互相点赞/评论
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	N := 20
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}

	ctx := context.Background()
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifier := service.NewNotifier(notifRepo, 1000)
	stop := notifier.Start(2)
	interactions := service.NewInteractionService(postRepo, commentRepo, likeRepo, userRepo, notifier, service.NewFeedCache(nil, 0))

	hash := must(bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost))

	users := make([]model.User, N)
	for i := 0; i < N; i++ {
		id := uuid.New().String()
		users[i] = model.User{
			ID:       id,
			Name:     fmt.Sprintf("farmer-%03d", i),
			Email:    fmt.Sprintf("farmer-%03d@example.com", i),
			Password: string(hash),
		}
	}
	if err := db.Create(&users).Error; err != nil {
		panic(err)
	}

	posts := make([]*model.Post, N)
	for i, u := range users {
		content := fmt.Sprintf("Field update %d: crops are doing well this week.", i)
		posts[i] = must(postRepo.Create(ctx, u.ID, &content, nil))
	}

	// 邻居互动，保证有跨用户的点赞与评论通知
	for i, u := range users {
		target := posts[(i+1)%N]
		if _, _, err := interactions.ToggleLike(ctx, target.ID, u.ID); err != nil {
			panic(err)
		}
		if _, err := interactions.AddComment(ctx, target.ID, u.ID, "Looking great, neighbour!"); err != nil {
			panic(err)
		}
	}

	_ = stop(ctx)
	time.Sleep(100 * time.Millisecond)
	fmt.Printf("seeded %d users, %d posts\n", N, N)
}
