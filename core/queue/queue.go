package queue

import (
	"context"
	"encoding/json"
	"time"

	"bandos-api/core/config"
	"bandos-api/core/logger"

	"github.com/hibiken/asynq"
)

// Task types.
const (
	TypeInvitationEmail = "invitation:email"
)

// InvitationEmailPayload is the payload for an invitation delivery task.
type InvitationEmailPayload struct {
	To          string `json:"to"`
	BandName    string `json:"band_name"`
	InviterName string `json:"inviter_name"`
	Token       string `json:"token"`
}

// Client enqueues background tasks.
type Client interface {
	EnqueueInvitationEmail(ctx context.Context, payload InvitationEmailPayload) error
	Close() error
}

type asynqClient struct {
	client *asynq.Client
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) Client {
	return &asynqClient{client: asynq.NewClient(redisOpt(cfg))}
}

func (c *asynqClient) EnqueueInvitationEmail(ctx context.Context, payload InvitationEmailPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeInvitationEmail, data)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return err
	}

	logger.Info("Queue:EnqueueInvitationEmail:Enqueued", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *asynqClient) Close() error {
	return c.client.Close()
}

// NewServer builds the background worker server. Handlers are registered by
// the caller on a ServeMux.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 5,
	})
}
