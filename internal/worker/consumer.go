package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/provider"
	"github.com/sweetnest/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer queue task consumer
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers task handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReminderNotify, c.handleReminderNotify)
}

func (c *Consumer) handleReminderNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_reminder_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReminderNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_reminder_notify_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.CakeID) == "" {
		logger.Debugw("worker_reminder_notify_skip_invalid_payload", "cake_id", payload.CakeID)
		return nil
	}
	// A reminder removed (or disabled) after scheduling should not fire.
	if c.Wishlist != nil && !c.Wishlist.IsInWishlist(payload.CakeID) {
		logger.Debugw("worker_reminder_notify_skip_not_in_wishlist", "cake_id", payload.CakeID)
		return nil
	}
	message := buildReminderMessage(payload)
	logger.Infow("reminder_due",
		"cake_id", payload.CakeID,
		"email", payload.Email,
		"message", message,
	)
	return nil
}

func buildReminderMessage(payload queue.ReminderNotifyPayload) string {
	name := strings.TrimSpace(payload.CakeName)
	if name == "" {
		name = "a cake on your wishlist"
	}
	message := fmt.Sprintf("Reminder: %s", name)
	if date := strings.TrimSpace(payload.Date); date != "" {
		message += fmt.Sprintf(" (%s)", date)
	}
	if note := strings.TrimSpace(payload.Note); note != "" {
		message += "\n" + note
	}
	return message
}
