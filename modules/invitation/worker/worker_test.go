package worker

import (
	"context"
	"encoding/json"
	"testing"

	"bandos-api/core/config"
	"bandos-api/core/queue"

	"github.com/hibiken/asynq"
)

func TestHandleInvitationEmailTaskMalformedPayload(t *testing.T) {
	task := asynq.NewTask(queue.TypeInvitationEmail, []byte("{not json"))

	if err := HandleInvitationEmailTask(context.Background(), task); err == nil {
		t.Fatal("malformed payload must fail the task")
	}
}

func TestHandleInvitationEmailTaskSMTPUnconfigured(t *testing.T) {
	config.Set(&config.Config{})

	body, err := json.Marshal(queue.InvitationEmailPayload{
		To:          "sax@example.com",
		BandName:    "Brass Section",
		InviterName: "Lead",
		Token:       "tok",
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	task := asynq.NewTask(queue.TypeInvitationEmail, body)

	// Without an SMTP host the task is dropped, not retried.
	if err := HandleInvitationEmailTask(context.Background(), task); err != nil {
		t.Fatalf("unconfigured SMTP must not error the task: %v", err)
	}
}
