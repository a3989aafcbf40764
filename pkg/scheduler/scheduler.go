package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobFunc 定时任务函数
type JobFunc func(ctx context.Context) error

// Scheduler 基于 cron 表达式的后台任务调度器
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	timeout time.Duration
}

// New 创建调度器，timeout 限制单次任务执行时长
func New(logger *zap.Logger, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		timeout: timeout,
	}
}

// Add 注册任务；spec 为标准 5 段 cron 表达式
func (s *Scheduler) Add(spec, name string, job JobFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error("定时任务执行失败", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("定时任务执行完成", zap.String("job", name), zap.Duration("latency", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("注册定时任务 %s 失败: %w", name, err)
	}
	s.logger.Info("定时任务已注册", zap.String("job", name), zap.String("spec", spec))
	return nil
}

// Start 启动调度
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度并等待运行中的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
