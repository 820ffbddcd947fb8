package notify

import (
	"context"

	"github.com/tondrop/tondrop-go/internal/model"
)

// Notifier delivers outbound messages to players after successful state
// changes. Delivery is best-effort: failures are reported to the caller for
// logging but must never affect ledger state.
type Notifier interface {
	Send(ctx context.Context, playerID model.PlayerID, text string) error
}

// Noop is a Notifier that discards all messages
type Noop struct{}

// Ensure Noop implements the interface
var _ Notifier = Noop{}

// Send discards the message
func (Noop) Send(context.Context, model.PlayerID, string) error {
	return nil
}
