package notifications

import "context"

// Mailer отправщик писем
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
