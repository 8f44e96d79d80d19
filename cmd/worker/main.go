package main

import (
	"log"

	"github.com/hibiken/asynq"

	"concurso-backend/internal/utils"
	"concurso-backend/internal/worker"
)

func main() {
	utils.LoadConfig()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     utils.GetConfig("REDIS_ADDR"),
			Password: utils.GetConfig("REDIS_PASSWORD"),
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	processor := worker.NewProcessor()
	if err := srv.Run(processor.Handler()); err != nil {
		log.Fatalf("worker stopped: %v", err)
	}
}
