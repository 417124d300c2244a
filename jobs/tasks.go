package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/valuable-brands/backoffice/internal/comms"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// QueueReminders carries the reminder sweep, consumed by the web process
	// that owns the CRM store.
	QueueReminders = "reminders"
	// TaskTypeSendEmail delivers one rendered email to one recipient.
	TaskTypeSendEmail = "comms:send_email"
	// TaskTypeReminderScan sweeps the CRM for due follow-up reminders.
	TaskTypeReminderScan = "crm:reminder_scan"

	// EmailKindBulk marks emails queued by a bulk send.
	EmailKindBulk = "bulk"
	// EmailKindReminder marks emails produced by the reminder scan.
	EmailKindReminder = "reminder"
)

// SendEmailPayload describes one email delivery.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Kind    string `json:"kind"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewReminderScanTask constructs the scheduled reminder sweep task.
func NewReminderScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReminderScan, nil)
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	return &Client{client: asynq.NewClient(redisOpts)}, nil
}

// EnqueueEmail queues a bulk-send delivery. Satisfies comms.Enqueuer.
func (c *Client) EnqueueEmail(ctx context.Context, payload comms.EmailPayload) error {
	return c.enqueue(ctx, SendEmailPayload{
		To:      payload.To,
		Subject: payload.Subject,
		Body:    payload.Body,
		Kind:    EmailKindBulk,
	})
}

func (c *Client) enqueue(ctx context.Context, payload SendEmailPayload) error {
	task, err := NewSendEmailTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
