package processor

import (
	"context"

	"github.com/ccna35/simple-crud-app/internal/service"
	"github.com/ccna35/simple-crud-app/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type cleanupTokensProcessor struct {
	verifications service.Verifications
}

func NewCleanupTokensProcessor(verifications service.Verifications) *cleanupTokensProcessor {
	return &cleanupTokensProcessor{
		verifications: verifications,
	}
}

func (p *cleanupTokensProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	count, err := p.verifications.CleanupExpiredTokens(ctx)
	if err != nil {
		// MaxRetry is 0 on this task: log and wait for the next tick.
		logger.Error("expired token cleanup failed", zap.Error(err))
		return err
	}

	logger.Info("expired token cleanup finished", zap.Int64("deleted", count))
	return nil
}
