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

type BookingRepository interface {
	// Book atomically flips an available slot to unavailable and records the
	// booking. It returns domain.ErrSlotUnavailable when the slot is unknown
	// or no longer available.
	Book(ctx context.Context, userID, slotID int64) (*domain.Booking, *domain.Slot, error)
	// Cancel deletes the booking and frees its slot in one transaction.
	Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error)
	// CancelOwned is Cancel restricted to bookings held by userID.
	CancelOwned(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.BookingDetail, int64, error)
	ListByDate(ctx context.Context, date time.Time, page domain.PageRequest) ([]domain.BookingDetail, int64, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Book(ctx context.Context, userID, slotID int64) (*domain.Booking, *domain.Slot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var slot domain.Slot
	err = tx.QueryRow(ctx, `
		UPDATE slots SET availability = false
		WHERE slot_id = $1 AND availability
		RETURNING slot_id, date, EXTRACT(HOUR FROM start_time)::int, EXTRACT(HOUR FROM end_time)::int`, slotID).
		Scan(&slot.ID, &slot.Date, &slot.StartHour, &slot.EndHour)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrSlotUnavailable
		}
		return nil, nil, fmt.Errorf("reserve slot: %w", err)
	}
	slot.State = domain.SlotBooked

	booking := domain.Booking{UserID: userID, SlotID: slotID}
	err = tx.QueryRow(ctx, `INSERT INTO bookings (user_id, slot_id, confirmation_status)
		VALUES ($1, $2, true)
		RETURNING booking_id, confirmation_status, created_at`, userID, slotID).
		Scan(&booking.ID, &booking.Confirmed, &booking.CreatedAt)
	if err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &booking, &slot, nil
}

func (r *PGBookingRepository) Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return r.cancel(ctx, `DELETE FROM bookings WHERE booking_id = $1
		RETURNING booking_id, user_id, slot_id, confirmation_status, created_at`, bookingID)
}

func (r *PGBookingRepository) CancelOwned(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return r.cancel(ctx, `DELETE FROM bookings WHERE booking_id = $1 AND user_id = $2
		RETURNING booking_id, user_id, slot_id, confirmation_status, created_at`, bookingID, userID)
}

func (r *PGBookingRepository) cancel(ctx context.Context, deleteQuery string, args ...any) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var b domain.Booking
	if err := tx.QueryRow(ctx, deleteQuery, args...).Scan(&b.ID, &b.UserID, &b.SlotID, &b.Confirmed, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE slots SET availability = true WHERE slot_id = $1`, b.SlotID); err != nil {
		return nil, fmt.Errorf("release slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

const bookingDetailSelect = `SELECT
	b.booking_id, b.user_id, b.slot_id, b.confirmation_status, b.created_at,
	s.date, EXTRACT(HOUR FROM s.start_time)::int, EXTRACT(HOUR FROM s.end_time)::int, s.availability,
	u.name, u.email, u.phone, u.role
FROM bookings b
JOIN slots s ON s.slot_id = b.slot_id
JOIN users u ON u.user_id = b.user_id`

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.BookingDetail, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	items, err := r.list(ctx, bookingDetailSelect+` WHERE b.user_id = $1 ORDER BY b.booking_id LIMIT $2 OFFSET $3`,
		userID, page.Size, page.Offset())
	return items, total, err
}

func (r *PGBookingRepository) ListByDate(ctx context.Context, date time.Time, page domain.PageRequest) ([]domain.BookingDetail, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings b JOIN slots s ON s.slot_id = b.slot_id WHERE s.date = $1::date`,
		dateParam(date)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	items, err := r.list(ctx, bookingDetailSelect+` WHERE s.date = $1::date ORDER BY b.booking_id LIMIT $2 OFFSET $3`,
		dateParam(date), page.Size, page.Offset())
	return items, total, err
}

func (r *PGBookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	details := make([]domain.BookingDetail, 0)
	for rows.Next() {
		var (
			d    domain.BookingDetail
			role string
		)
		if err := rows.Scan(
			&d.Booking.ID, &d.Booking.UserID, &d.Booking.SlotID, &d.Booking.Confirmed, &d.Booking.CreatedAt,
			&d.Slot.Date, &d.Slot.StartHour, &d.Slot.EndHour, &d.Slot.Available,
			&d.User.Name, &d.User.Email, &d.User.Phone, &role,
		); err != nil {
			return nil, err
		}
		d.Slot.ID = d.Booking.SlotID
		d.Slot.State = domain.DeriveState(d.Slot.Available, true)
		d.User.ID = d.Booking.UserID
		d.User.Role = domain.Role(role)
		details = append(details, d)
	}
	return details, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
