package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"gatherly-api/core/logger"

	"github.com/hibiken/asynq"
)

// Task types handled by the worker.
const (
	TaskAvailabilityChanged = "notification:availability_changed"
	TaskInvitationCreated   = "notification:invitation_created"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

var client *asynq.Client

func InitClient(config RedisConfig) {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	logger.Info("Queue client initialized", "addr", config.Addr)
}

func CloseClient() {
	if client != nil {
		_ = client.Close()
	}
}

// Enqueue marshals the payload and enqueues a task of the given type.
func Enqueue(ctx context.Context, taskType string, payload any) error {
	if client == nil {
		return fmt.Errorf("queue client is not initialized")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	info, err := client.EnqueueContext(ctx, asynq.NewTask(taskType, data))
	if err != nil {
		logger.Error("Queue:Enqueue", "type", taskType, "error", err)
		return err
	}

	logger.Info("Queue:Enqueue", "type", taskType, "task_id", info.ID, "queue", info.Queue)
	return nil
}

// NewServer builds the asynq worker server.
func NewServer(config RedisConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)
}
