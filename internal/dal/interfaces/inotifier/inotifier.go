package inotifier

import "context"

// INotifier delivers best-effort notifications. Callers treat failures as
// log-and-forget; nothing in the order pipeline depends on delivery.
type INotifier interface {
	Notify(ctx context.Context, channel, recipient, subject, body string) error
}
