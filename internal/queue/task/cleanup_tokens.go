package task

import "github.com/hibiken/asynq"

const (
	CleanupTokensTaskName  = "cleanupExpiredTokensTask"
	CleanupTokensQueueName = "maintenanceQueue"
)

// NewCleanupTokensTask builds the periodic expired-token sweep. A failed run
// is not retried; it just waits for the next scheduled tick.
func NewCleanupTokensTask() *asynq.Task {
	return asynq.NewTask(
		CleanupTokensTaskName,
		nil,
		asynq.MaxRetry(0),
		asynq.Queue(CleanupTokensQueueName),
	)
}
