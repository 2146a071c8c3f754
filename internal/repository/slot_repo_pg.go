package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository interface {
	// GenerateDay inserts the 24 hourly slots of date unless the date already
	// has at least one slot. It returns the number of rows inserted.
	GenerateDay(ctx context.Context, date time.Time) (int64, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Create(ctx context.Context, date time.Time, startHour int) (*domain.Slot, error)
	Block(ctx context.Context, id int64) (*domain.Slot, error)
}

type PGSlotRepository struct {
	db *pgxpool.Pool
}

func NewSlotRepository(db *pgxpool.Pool) SlotRepository {
	return &PGSlotRepository{db: db}
}

const slotColumns = `s.slot_id, s.date,
	EXTRACT(HOUR FROM s.start_time)::int, EXTRACT(HOUR FROM s.end_time)::int,
	s.availability,
	EXISTS (SELECT 1 FROM bookings b WHERE b.slot_id = s.slot_id)`

// Dates travel as YYYY-MM-DD text so the session time zone cannot shift them.
func dateParam(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func scanSlot(row pgx.Row) (domain.Slot, error) {
	var (
		s          domain.Slot
		referenced bool
	)
	if err := row.Scan(&s.ID, &s.Date, &s.StartHour, &s.EndHour, &s.Available, &referenced); err != nil {
		return domain.Slot{}, err
	}
	s.State = domain.DeriveState(s.Available, referenced)
	return s, nil
}

func (r *PGSlotRepository) GenerateDay(ctx context.Context, date time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `
		INSERT INTO slots (date, start_time, end_time, availability)
		SELECT $1::date, make_time(h, 0, 0), make_time((h + 1) % 24, 0, 0), true
		FROM generate_series(0, 23) AS h
		WHERE NOT EXISTS (SELECT 1 FROM slots WHERE date = $1::date)
		ORDER BY h
		ON CONFLICT (date, start_time) DO NOTHING`, dateParam(date))
	if err != nil {
		return 0, fmt.Errorf("generate slots: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *PGSlotRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `SELECT `+slotColumns+` FROM slots s WHERE s.date = $1::date ORDER BY s.slot_id`, dateParam(date))
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0, domain.HoursPerDay)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *PGSlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s, err := scanSlot(r.db.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots s WHERE s.slot_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return &s, nil
}

func (r *PGSlotRepository) Create(ctx context.Context, date time.Time, startHour int) (*domain.Slot, error) {
	endHour := domain.EndHourFor(startHour)
	s := domain.Slot{
		Date:      domain.NormalizeDate(date),
		StartHour: startHour,
		EndHour:   endHour,
		Available: true,
		State:     domain.SlotAvailable,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO slots (date, start_time, end_time, availability)
		VALUES ($1::date, make_time($2, 0, 0), make_time($3, 0, 0), true)
		ON CONFLICT (date, start_time) DO NOTHING
		RETURNING slot_id`, dateParam(date), startHour, endHour).Scan(&s.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotExists
		}
		return nil, fmt.Errorf("insert slot: %w", err)
	}
	return &s, nil
}

// Block marks the slot unavailable whatever its current state.
func (r *PGSlotRepository) Block(ctx context.Context, id int64) (*domain.Slot, error) {
	s, err := scanSlot(r.db.QueryRow(ctx, `UPDATE slots AS s SET availability = false WHERE s.slot_id = $1 RETURNING `+slotColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("block slot: %w", err)
	}
	return &s, nil
}

var _ SlotRepository = (*PGSlotRepository)(nil)
