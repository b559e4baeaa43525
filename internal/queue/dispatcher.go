package queue

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ccna35/simple-crud-app/internal/queue/task"

	"github.com/hibiken/asynq"
)

// EmailDispatcher hands verification emails to the asynq queue. Enqueueing is
// the delivery handoff: if it fails, the email was not dispatched.
type EmailDispatcher struct {
	client *asynq.Client
}

func NewEmailDispatcher(client *asynq.Client) *EmailDispatcher {
	return &EmailDispatcher{
		client: client,
	}
}

func (d *EmailDispatcher) SendVerificationEmail(ctx context.Context, email string, verificationURL string, expiresIn time.Duration) error {
	expiryHours := int(math.Round(expiresIn.Hours()))

	t, err := task.NewSendEmailTask(email, verificationURL, expiryHours)
	if err != nil {
		return fmt.Errorf("build send email task failed: %w", err)
	}

	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send email task failed: %w", err)
	}

	return nil
}
