package repository

import (
	"context"
	"errors"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	CreateForBooking(ctx context.Context, payment *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

// CreateForBooking inserts the payment attempt and, on success, promotes the
// booking to CONFIRMED in the same transaction. The booking row is locked
// for the duration of the check-insert-promote sequence so two concurrent
// attempts serialize and the loser observes the winner's SUCCESS row.
func (r *PGPaymentRepository) CreateForBooking(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status domain.BookingStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id=$1 FOR UPDATE`, payment.BookingID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFound("booking not found")
		}
		return err
	}
	// CANCELLED is terminal: a payment must never resurrect the booking.
	if status == domain.BookingStatusCancelled {
		return domain.NewInvalidState("booking is cancelled")
	}

	var paid bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE booking_id=$1 AND payment_status=$2)`,
		payment.BookingID, domain.PaymentStatusSuccess).Scan(&paid); err != nil {
		return err
	}
	if paid {
		return domain.NewInvalidState("payment already completed for this booking")
	}

	if err := tx.QueryRow(ctx, `INSERT INTO payments (reference, booking_id, payment_mode, amount, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		payment.Reference, payment.BookingID, payment.Mode, payment.Amount, payment.Status).
		Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return err
	}

	if payment.Status == domain.PaymentStatusSuccess {
		if _, err := tx.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`,
			domain.BookingStatusConfirmed, payment.BookingID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGPaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.reference, p.booking_id, p.payment_mode, p.amount, p.payment_status, p.created_at,
			COALESCE(b.pnr, ''), COALESCE(b.flight_id, 0), COALESCE(b.status, '')
		FROM payments p
		LEFT JOIN bookings b ON p.booking_id = b.id
		WHERE p.booking_id=$1
		ORDER BY p.created_at DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Reference, &p.BookingID, &p.Mode, &p.Amount, &p.Status, &p.CreatedAt,
			&p.PNR, &p.FlightID, &p.BookingStatus); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
