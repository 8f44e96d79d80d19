package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"concurso-backend/internal/queue"
	"concurso-backend/internal/utils/mailing"
)

// Processor is plugged into the asynq worker loop.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// Handler registers the mail job handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.SendMailTask, p.handleSendMail)
	return mux
}

func (p *Processor) handleSendMail(ctx context.Context, task *asynq.Task) error {
	var payload queue.SendMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := mailing.SendMail(payload.To, payload.Subject, payload.Body); err != nil {
		log.Printf("send mail to %s failed: %v", payload.To, err)
		return err
	}
	return nil
}
