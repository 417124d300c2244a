package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/valuable-brands/backoffice/internal/comms"
	jobmetrics "github.com/valuable-brands/backoffice/internal/jobs"
)

// SendEmailJob delivers queued emails through the configured mailer.
type SendEmailJob struct {
	Mailer  comms.Mailer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewSendEmailJob initialises the delivery handler.
func NewSendEmailJob(mailer comms.Mailer, logger *slog.Logger, metrics *jobmetrics.Metrics) *SendEmailJob {
	return &SendEmailJob{Mailer: mailer, Logger: logger, Metrics: metrics}
}

// Handle processes one TaskTypeSendEmail task. Failures are returned so Asynq
// retries the single recipient, not the whole batch.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Mailer == nil {
		return errors.New("send email: handler not configured")
	}
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.To == "" {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskTypeSendEmail)
	err := j.Mailer.Send(ctx, comms.EmailPayload{
		To:      payload.To,
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	if err = tracker.End(err); err != nil {
		if j.Logger != nil {
			j.Logger.Warn("email delivery failed",
				slog.String("to", payload.To),
				slog.Any("error", err))
		}
		return err
	}
	kind := payload.Kind
	if kind == "" {
		kind = EmailKindBulk
	}
	j.Metrics.AddEmailsSent(kind, 1)
	return nil
}
