package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Domenick1991/turfbooking/internal/kafka"
)

// Sender stands in for a mail/SMS gateway: it records each delivery in the log.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, msg kafka.NotificationMessage) error {
	s.log.Info().
		Str("notification_id", msg.ID).
		Str("kind", msg.Kind).
		Str("to", msg.To).
		Int64("slot_id", msg.SlotID).
		Str("body", msg.Body).
		Msg("email sent")
	return nil
}
