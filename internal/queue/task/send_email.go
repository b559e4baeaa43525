package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendEmailTaskName  = "sendEmailTask"
	SendEmailQueueName = "sendEmailQueue"
)

type SendEmail struct {
	Email           string `json:"email"`
	VerificationURL string `json:"verification_url"`
	ExpiryHours     int    `json:"expiry_hours"`
}

func NewSendEmailTask(email string, verificationURL string, expiryHours int) (*asynq.Task, error) {
	var data SendEmail
	data.Email = email
	data.VerificationURL = verificationURL
	data.ExpiryHours = expiryHours

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendEmailQueueName),
	), nil
}
