package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/agrifeed/internal/model"
	"github.com/d60-Lab/agrifeed/internal/repository"
	"github.com/d60-Lab/agrifeed/pkg/logger"
)

// Notifier 通知的异步尽力写入器：点赞/评论成功与否不依赖通知落库。
// 队列满或写入失败只记日志，不向主流程回传错误。
type Notifier struct {
	repo repository.NotificationRepository
	ch   chan *model.Notification
}

func NewNotifier(repo repository.NotificationRepository, queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &Notifier{repo: repo, ch: make(chan *model.Notification, queueSize)}
}

// Start 启动 workers，返回停止函数（等待队列自然排空一小段时间）
func (n *Notifier) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case job := <-n.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := n.repo.Create(ctx, job); err != nil {
						logger.Warn("notification write failed",
							zap.String("recipient", job.UserID),
							zap.String("type", string(job.Type)),
							zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(n.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

// Enqueue 自我互动不产生通知，由调用方保证 creator != recipient
func (n *Notifier) Enqueue(job *model.Notification) {
	select {
	case n.ch <- job:
	default:
		logger.Warn("notifier queue full, drop notification",
			zap.String("recipient", job.UserID),
			zap.String("type", string(job.Type)))
	}
}

// QueueLen 返回当前队列长度（采样值）。
func (n *Notifier) QueueLen() int { return len(n.ch) }
