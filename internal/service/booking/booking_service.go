package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/metrics"
	"github.com/Domenick1991/turfbooking/internal/notify"
	"github.com/Domenick1991/turfbooking/internal/repository"
)

const DefaultPageSize = 3

type BookingUseCase interface {
	Book(ctx context.Context, userID int64, slotIDs []int64) (*BookResult, error)
	Cancel(ctx context.Context, bookingID int64) (bool, error)
	CancelOwn(ctx context.Context, bookingID, userID int64) (bool, error)
	ListForUser(ctx context.Context, userID int64, page int) (domain.Page[domain.BookingDetail], error)
	ListForDate(ctx context.Context, date time.Time, page int) (domain.Page[domain.BookingDetail], error)
}

// BookResult reports which requested slots were booked. Skipped ids were
// unknown or no longer available at the moment of the attempt.
type BookResult struct {
	Booked   []domain.Slot
	Bookings []domain.Booking
	Skipped  []int64
}

// Complete reports whether every requested slot was booked.
func (r *BookResult) Complete() bool {
	return len(r.Skipped) == 0
}

type BookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	notifier notify.Notifier
	pageSize int
	log      zerolog.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotifier(n notify.Notifier) BookingServiceOption {
	return func(s *BookingService) {
		s.notifier = n
	}
}

func WithPageSize(size int) BookingServiceOption {
	return func(s *BookingService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	log zerolog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		users:    users,
		pageSize: DefaultPageSize,
		log:      log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book reserves each slot in order, each in its own atomic unit. Slots that
// cannot be reserved are skipped. On a storage error the slots booked so far
// are returned together with the error.
func (s *BookingService) Book(ctx context.Context, userID int64, slotIDs []int64) (*BookResult, error) {
	if len(slotIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one slot id is required", domain.ErrValidation)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &BookResult{}
	var bookErr error
	for _, id := range slotIDs {
		b, slot, err := s.bookings.Book(ctx, userID, id)
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.BookingAttemptsTotal.WithLabelValues("skipped").Inc()
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if err != nil {
			metrics.BookingAttemptsTotal.WithLabelValues("error").Inc()
			bookErr = fmt.Errorf("book slot %d: %w", id, err)
			break
		}
		metrics.BookingAttemptsTotal.WithLabelValues("booked").Inc()
		result.Booked = append(result.Booked, *slot)
		result.Bookings = append(result.Bookings, *b)
	}

	s.log.Info().
		Int64("user_id", userID).
		Int("requested", len(slotIDs)).
		Int("booked", len(result.Booked)).
		Msg("booking request processed")

	s.notify(ctx, user, result.Booked)
	return result, bookErr
}

func (s *BookingService) notify(ctx context.Context, user *domain.User, slots []domain.Slot) {
	if s.notifier == nil {
		return
	}
	for i := range slots {
		if err := s.notifier.Notify(ctx, user, &slots[i]); err != nil {
			metrics.NotificationErrorsTotal.Inc()
			s.log.Error().Err(err).Int64("slot_id", slots[i].ID).Msg("failed to send booking notification")
		}
	}
}

// Cancel removes any booking and frees its slot. It reports false when the
// booking does not exist.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) (bool, error) {
	b, err := s.bookings.Cancel(ctx, bookingID)
	return s.cancelled(b, err)
}

// CancelOwn is Cancel limited to bookings held by userID.
func (s *BookingService) CancelOwn(ctx context.Context, bookingID, userID int64) (bool, error) {
	b, err := s.bookings.CancelOwned(ctx, bookingID, userID)
	return s.cancelled(b, err)
}

func (s *BookingService) cancelled(b *domain.Booking, err error) (bool, error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		metrics.BookingsCancelledTotal.WithLabelValues("not_found").Inc()
		return false, nil
	case err != nil:
		metrics.BookingsCancelledTotal.WithLabelValues("error").Inc()
		return false, err
	}
	metrics.BookingsCancelledTotal.WithLabelValues("cancelled").Inc()
	s.log.Info().Int64("booking_id", b.ID).Int64("slot_id", b.SlotID).Msg("booking cancelled")
	return true, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64, page int) (domain.Page[domain.BookingDetail], error) {
	req := domain.PageRequest{Page: page}.Normalize(s.pageSize)
	items, total, err := s.bookings.ListByUser(ctx, userID, req)
	if err != nil {
		return domain.Page[domain.BookingDetail]{}, err
	}
	return domain.NewPage(items, total, req), nil
}

func (s *BookingService) ListForDate(ctx context.Context, date time.Time, page int) (domain.Page[domain.BookingDetail], error) {
	req := domain.PageRequest{Page: page}.Normalize(s.pageSize)
	items, total, err := s.bookings.ListByDate(ctx, domain.NormalizeDate(date), req)
	if err != nil {
		return domain.Page[domain.BookingDetail]{}, err
	}
	return domain.NewPage(items, total, req), nil
}

var _ BookingUseCase = (*BookingService)(nil)
