package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"github.com/lborres/tasklist/core"
)

const (
	DefaultSlackURL = "https://slack.com/api/chat.postMessage"
	DefaultChannel  = "task-notifications-demo"
	DefaultTimeout  = 5 * time.Second
)

var ErrSlackRejected = errors.New("slack rejected message")

type SlackConfig struct {
	Token   string
	URL     string
	Channel string
	Timeout time.Duration
}

// Slack posts completion messages to a channel with a bot token.
type Slack struct {
	client  *client.Client
	url     string
	token   string
	channel string
}

var _ core.Notifier = (*Slack)(nil)

type slackReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// New returns a Slack notifier, or NoOp when no token is configured.
func New(cfg SlackConfig) core.Notifier {
	if cfg.Token == "" {
		return NoOp{}
	}
	return NewSlack(cfg)
}

func NewSlack(cfg SlackConfig) *Slack {
	if cfg.URL == "" {
		cfg.URL = DefaultSlackURL
	}
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Slack{
		client:  client.New().SetTimeout(cfg.Timeout),
		url:     cfg.URL,
		token:   cfg.Token,
		channel: cfg.Channel,
	}
}

// Message is the text announced for a completed task.
func Message(task *core.Task) string {
	return fmt.Sprintf("Task \"%s\" has been marked complete", task.Title)
}

func (s *Slack) TaskCompleted(ctx context.Context, task *core.Task) error {
	resp, err := s.client.Post(s.url, client.Config{
		Ctx: ctx,
		Header: map[string]string{
			"Authorization": "Bearer " + s.token,
		},
		FormData: map[string]string{
			"channel": s.channel,
			"text":    Message(task),
		},
	})
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Close()

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("%w: status %d", ErrSlackRejected, code)
	}

	var reply slackReply
	if err := resp.JSON(&reply); err != nil {
		return fmt.Errorf("decode slack reply: %w", err)
	}
	if !reply.OK {
		return fmt.Errorf("%w: %s", ErrSlackRejected, reply.Error)
	}
	return nil
}

// NoOp discards notifications.
type NoOp struct{}

func (NoOp) TaskCompleted(context.Context, *core.Task) error { return nil }
