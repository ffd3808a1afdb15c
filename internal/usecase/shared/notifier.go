package shared

import "context"

// Notifier delivers a message to a buyer over the chat messenger. Delivery is
// best-effort: callers log failures and move on, they never retry and never
// roll back committed work because of one.
type Notifier interface {
	Notify(ctx context.Context, chatID string, text string) error
}

// Notification is a message queued during a transaction and flushed after
// commit.
type Notification struct {
	ChatID string
	Text   string
}
