package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/metrics"
	"github.com/Domenick1991/turfbooking/internal/repository"
)

type SlotUseCase interface {
	EnsureDayGenerated(ctx context.Context, date time.Time) error
	EnsureDaysAhead(ctx context.Context, from time.Time, days int) error
	ListSlots(ctx context.Context, date time.Time) ([]domain.Slot, error)
	CreateSlot(ctx context.Context, date time.Time, startHour int) (*domain.Slot, error)
	BlockSlot(ctx context.Context, slotID int64) (*domain.Slot, error)
}

// DayMarkers remembers which dates already have their slots. Slots are never
// deleted, so a marker cannot go stale.
type DayMarkers interface {
	IsDayGenerated(ctx context.Context, date time.Time) (bool, error)
	MarkDayGenerated(ctx context.Context, date time.Time) error
}

type SlotService struct {
	repo    repository.SlotRepository
	markers DayMarkers
	log     zerolog.Logger
}

func NewSlotService(repo repository.SlotRepository, markers DayMarkers, log zerolog.Logger) *SlotService {
	return &SlotService{repo: repo, markers: markers, log: log}
}

// EnsureDayGenerated materialises the 24 hourly slots of date on first use.
// Repeated and concurrent calls never duplicate slots.
func (s *SlotService) EnsureDayGenerated(ctx context.Context, date time.Time) error {
	date = domain.NormalizeDate(date)

	if s.markers != nil {
		done, err := s.markers.IsDayGenerated(ctx, date)
		switch {
		case err != nil:
			metrics.DayMarkerLookupsTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("date", date.Format(domain.DateLayout)).Msg("day marker lookup failed")
		case done:
			metrics.DayMarkerLookupsTotal.WithLabelValues("hit").Inc()
			return nil
		default:
			metrics.DayMarkerLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	inserted, err := s.repo.GenerateDay(ctx, date)
	if err != nil {
		return err
	}
	if inserted > 0 {
		metrics.SlotDaysGeneratedTotal.Inc()
		s.log.Info().Str("date", date.Format(domain.DateLayout)).Int64("slots", inserted).Msg("slots generated")
	}

	if s.markers != nil {
		if err := s.markers.MarkDayGenerated(ctx, date); err != nil {
			s.log.Warn().Err(err).Str("date", date.Format(domain.DateLayout)).Msg("failed to set day marker")
		}
	}
	return nil
}

// EnsureDaysAhead generates from and the days-1 dates after it.
func (s *SlotService) EnsureDaysAhead(ctx context.Context, from time.Time, days int) error {
	from = domain.NormalizeDate(from)
	for i := 0; i < days; i++ {
		if err := s.EnsureDayGenerated(ctx, from.AddDate(0, 0, i)); err != nil {
			return fmt.Errorf("ensure days ahead: %w", err)
		}
	}
	return nil
}

// ListSlots returns every slot of date in creation order, generating the day first.
func (s *SlotService) ListSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	date = domain.NormalizeDate(date)
	if err := s.EnsureDayGenerated(ctx, date); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *SlotService) CreateSlot(ctx context.Context, date time.Time, startHour int) (*domain.Slot, error) {
	if !domain.ValidStartHour(startHour) {
		return nil, fmt.Errorf("%w: start hour must be between %d and %d", domain.ErrValidation, domain.MinStartHour, domain.MaxStartHour)
	}
	slot, err := s.repo.Create(ctx, domain.NormalizeDate(date), startHour)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("slot_id", slot.ID).Str("date", slot.DateString()).Int("start_hour", startHour).Msg("slot created")
	return slot, nil
}

// BlockSlot takes the slot out of circulation. There is no way back.
func (s *SlotService) BlockSlot(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, err := s.repo.Block(ctx, slotID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("slot_id", slotID).Msg("slot blocked")
	return slot, nil
}

var _ SlotUseCase = (*SlotService)(nil)
