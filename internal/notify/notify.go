// Package notify builds booking confirmation texts and hands them to a
// delivery channel.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/kafka"
)

const (
	KindUser  = "user"
	KindOwner = "owner"
)

// Messages holds the two text blocks produced for one booked slot.
type Messages struct {
	User  string
	Owner string
}

func Format(user *domain.User, slot *domain.Slot) Messages {
	date, start, end := slot.DateString(), slot.StartTime(), slot.EndTime()
	return Messages{
		User: fmt.Sprintf("Hello %s,\nYour booking is confirmed for %s from %s to %s.\nThank you!",
			user.Name, date, start, end),
		Owner: fmt.Sprintf("New booking by %s.\nDate: %s\nTime: %s to %s\nUser Email: %s\nUser Phone: %s",
			user.Name, date, start, end, user.Email, user.Phone),
	}
}

type Notifier interface {
	Notify(ctx context.Context, user *domain.User, slot *domain.Slot) error
}

// LogNotifier writes both messages to the log instead of delivering them.
type LogNotifier struct {
	ownerEmail string
	log        zerolog.Logger
}

func NewLogNotifier(ownerEmail string, log zerolog.Logger) *LogNotifier {
	return &LogNotifier{ownerEmail: ownerEmail, log: log}
}

func (n *LogNotifier) Notify(_ context.Context, user *domain.User, slot *domain.Slot) error {
	m := Format(user, slot)
	n.log.Info().Str("to", user.Email).Int64("slot_id", slot.ID).Str("body", m.User).Msg("notification")
	n.log.Info().Str("to", n.ownerEmail).Int64("slot_id", slot.ID).Str("body", m.Owner).Msg("notification")
	return nil
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// KafkaNotifier publishes both messages to a topic keyed by recipient. A
// failure on one does not stop the other.
type KafkaNotifier struct {
	publisher  Publisher
	topic      string
	ownerEmail string
	now        func() time.Time
}

func NewKafkaNotifier(publisher Publisher, topic, ownerEmail string) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, topic: topic, ownerEmail: ownerEmail, now: time.Now}
}

func (n *KafkaNotifier) Notify(ctx context.Context, user *domain.User, slot *domain.Slot) error {
	m := Format(user, slot)
	now := n.now().UTC()
	out := []kafka.NotificationMessage{
		{ID: uuid.NewString(), Kind: KindUser, To: user.Email, Body: m.User, SlotID: slot.ID, CreatedAt: now},
		{ID: uuid.NewString(), Kind: KindOwner, To: n.ownerEmail, Body: m.Owner, SlotID: slot.ID, CreatedAt: now},
	}
	var errs []error
	for _, msg := range out {
		if err := n.publisher.Publish(ctx, n.topic, msg.To, msg); err != nil {
			errs = append(errs, fmt.Errorf("publish %s notification: %w", msg.Kind, err))
		}
	}
	return errors.Join(errs...)
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*KafkaNotifier)(nil)
)
