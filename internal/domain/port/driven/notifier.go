package driven

import "context"

// Notifier defines the driven port for delivering a message to the fixed
// destination chat. Failures are reported as *model.DeliveryError.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
