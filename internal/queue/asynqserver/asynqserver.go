package asynqserver

import (
	"fmt"

	"github.com/ccna35/simple-crud-app/internal/cache"
	"github.com/ccna35/simple-crud-app/internal/config"
	"github.com/ccna35/simple-crud-app/internal/queue/processor"
	"github.com/ccna35/simple-crud-app/internal/queue/task"
	"github.com/ccna35/simple-crud-app/internal/service"
	"github.com/ccna35/simple-crud-app/internal/worker"

	"github.com/hibiken/asynq"
)

func New(cfg config.Cache, workers *worker.Workers, verifications service.Verifications) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers, verifications)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler registers the daily expired-token sweep on the given cron spec.
func NewScheduler(cfg config.Cache, cleanupCron string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(
		RedisOptions(cfg),
		&asynq.SchedulerOpts{LogLevel: asynq.ErrorLevel},
	)

	if _, err := scheduler.Register(cleanupCron, task.NewCleanupTokensTask()); err != nil {
		return nil, fmt.Errorf("register cleanup task failed: %w", err)
	}

	return scheduler, nil
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password}
	}
	return opts
}

func getQueues(workers *worker.Workers, verifications service.Verifications) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendEmailTaskName, processor.NewSendEmailProcessor(workers))
	mux.Handle(task.CleanupTokensTaskName, processor.NewCleanupTokensProcessor(verifications))
	queues := map[string]int{
		task.SendEmailQueueName:     2,
		task.CleanupTokensQueueName: 1,
	}
	return mux, queues
}
