package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// SendMailTask is scheduled for every outgoing email (verification,
	// registration confirmation, payment receipt).
	SendMailTask = "mail:send"
)

type SendMailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func EnqueueSendMail(ctx context.Context, client *asynq.Client, payload SendMailPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(SendMailTask, data)
	if _, err := client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue mail task: %w", err)
	}
	return nil
}
