package queue

import (
	"encoding/json"

	"github.com/sweetnest/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReminderNotify wishlist reminder notification task
	TaskReminderNotify = constants.TaskReminderNotify
)

// ReminderNotifyPayload wishlist reminder task payload
type ReminderNotifyPayload struct {
	CakeID   string `json:"cake_id"`
	CakeName string `json:"cake_name"`
	Date     string `json:"date"`
	Note     string `json:"note"`
	Email    string `json:"email"`
}

// NewReminderNotifyTask creates a wishlist reminder task
func NewReminderNotifyTask(payload ReminderNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReminderNotify, body), nil
}
