package bale

import "context"

// NopNotifier discards every message. Used when no bot token is configured
// and in tests.
type NopNotifier struct{}

func (NopNotifier) Notify(_ context.Context, _ string, _ string) error {
	return nil
}
