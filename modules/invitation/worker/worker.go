package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"bandos-api/core/config"
	"bandos-api/core/logger"
	"bandos-api/core/queue"
	"bandos-api/core/utils"

	"github.com/hibiken/asynq"
)

// HandleInvitationEmailTask delivers one invitation email. Returning an
// error makes asynq retry the task.
func HandleInvitationEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.InvitationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal invitation email payload: %w", err)
	}

	cfg, ok := config.GetSafe()
	if !ok || cfg.SMTP.Host == "" {
		logger.Warn("InvitationWorker:HandleInvitationEmailTask:SMTPNotConfigured", "to", payload.To)
		return nil
	}

	body := fmt.Sprintf(
		"%s invited you to join the band %q.\r\n\r\nOpen the app and check your pending invitations to respond.\r\nInvitation code: %s\r\n",
		payload.InviterName, payload.BandName, payload.Token,
	)
	msg := utils.EmailMessage{
		To:      []string{payload.To},
		Subject: fmt.Sprintf("You're invited to join %s", payload.BandName),
		Body:    body,
	}

	if err := utils.SendEmailTLS(msg); err != nil {
		logger.Error("InvitationWorker:HandleInvitationEmailTask:Send:Error:", err)
		return err
	}

	logger.Info("InvitationWorker:HandleInvitationEmailTask:Sent", "to", payload.To)
	return nil
}
