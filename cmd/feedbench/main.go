package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

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

// feedbench: 构造 POSTS 个帖子（每帖随机点赞/评论），测信息流组装耗时分布
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	POSTS := 500
	if s := os.Getenv("POSTS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			POSTS = n
		}
	}
	ROUNDS := 100
	if s := os.Getenv("ROUNDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			ROUNDS = n
		}
	}

	ctx := context.Background()
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)
	postSvc := service.NewPostService(postRepo, commentRepo, likeRepo, userRepo, service.NewFeedCache(nil, 0))

	// seed
	users := make([]model.User, 100)
	for i := range users {
		id := uuid.New().String()
		users[i] = model.User{ID: id, Name: "u" + id[:8], Email: id[:8] + "@example.com", Password: "p"}
	}
	_ = db.Create(&users).Error

	for i := 0; i < POSTS; i++ {
		author := users[rand.Intn(len(users))]
		content := fmt.Sprintf("post %d", i)
		post := must(postRepo.Create(ctx, author.ID, &content, nil))
		for j := 0; j < rand.Intn(8); j++ {
			_, _ = likeRepo.Create(ctx, users[rand.Intn(len(users))].ID, post.ID)
		}
		for j := 0; j < rand.Intn(4); j++ {
			_, _ = commentRepo.Create(ctx, post.ID, users[rand.Intn(len(users))].ID, "nice")
		}
	}

	recs := make([]time.Duration, 0, ROUNDS)
	t0 := time.Now()
	for i := 0; i < ROUNDS; i++ {
		viewer := ""
		if i%2 == 1 {
			viewer = users[rand.Intn(len(users))].ID
		}
		st := time.Now()
		if _, err := postSvc.GlobalFeed(ctx, viewer); err != nil {
			panic(err)
		}
		recs = append(recs, time.Since(st))
	}
	total := time.Since(t0)

	sort.Slice(recs, func(i, j int) bool { return recs[i] < recs[j] })
	pct := func(p float64) time.Duration {
		idx := int(p * float64(len(recs)-1))
		return recs[idx]
	}
	fmt.Printf("posts=%d rounds=%d total=%v\n", POSTS, ROUNDS, total)
	fmt.Printf("p50=%v p90=%v p99=%v max=%v\n", pct(0.50), pct(0.90), pct(0.99), recs[len(recs)-1])
}
