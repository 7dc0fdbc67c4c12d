package mailer

import "context"

// Notifier is the outbound mail collaborator. Implementations must be safe
// for concurrent use; delivery failures are reported, never retried here.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
