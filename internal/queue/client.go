package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweetnest/storefront/internal/config"
	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue default queue name
	DefaultQueue = constants.QueueDefault
)

// Client queue client wrapper. Disabled clients swallow enqueues so reminder
// scheduling stays best-effort when no broker is configured.
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
	now          func() time.Time
}

// NewClient creates the queue client
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue, now: time.Now}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
		now:          time.Now,
	}, nil
}

// Enabled reports whether enqueues reach a broker
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close closes the client
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueReminderNotify pushes a wishlist reminder notification, delayed
// until the reminder date. Past dates fire immediately.
func (c *Client) EnqueueReminderNotify(payload ReminderNotifyPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewReminderNotifyTask(payload)
	if err != nil {
		return err
	}
	delay := time.Duration(0)
	if when, err := time.Parse("2006-01-02", payload.Date); err == nil {
		if d := when.Sub(c.now()); d > 0 {
			delay = d
		}
	}
	options := append([]asynq.Option{asynq.Queue(c.defaultQueue), asynq.ProcessIn(delay)}, opts...)
	_, err = c.client.Enqueue(task, options...)
	return err
}

// ScheduleReminder satisfies the wishlist store's scheduler hook
func (c *Client) ScheduleReminder(cakeID, cakeName, date, note, email string) error {
	err := c.EnqueueReminderNotify(ReminderNotifyPayload{
		CakeID:   cakeID,
		CakeName: cakeName,
		Date:     date,
		Note:     note,
		Email:    email,
	})
	if err == nil && c.Enabled() {
		logger.Infow("reminder_enqueued", "cake_id", cakeID, "date", date)
	}
	return err
}

// BuildServerConfig builds the queue worker configuration
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
