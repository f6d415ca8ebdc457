package repository

import (
	"context"
	"errors"
	"time"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicatePNR reports a unique-constraint violation on the pnr column.
// The pre-insert existence check cannot rule this out under concurrency, so
// the service regenerates the code and reinserts.
var ErrDuplicatePNR = errors.New("pnr already taken")

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	PNRExists(ctx context.Context, pnr string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	Cancel(ctx context.Context, pnr string) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusPending
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (pnr, user_id, flight_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		booking.PNR, booking.UserID, booking.FlightID, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePNR
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE pnr=$1)`, pnr).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, pnr, user_id, flight_id, status, created_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PNR, &b.UserID, &b.FlightID, &b.Status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("booking not found")
		}
		return nil, err
	}
	return &b, nil
}

// GetByPNR returns the booking joined with flight and passenger display
// fields. The joins are LEFT because flight deletion is not guarded against
// existing bookings; missing sides come back zero-valued.
func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT b.id, b.pnr, b.user_id, b.flight_id, b.status, b.created_at,
			COALESCE(f.flight_number, ''), COALESCE(f.source, ''), COALESCE(f.destination, ''),
			f.departure_time, f.arrival_time,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM bookings b
		LEFT JOIN flights f ON b.flight_id = f.id
		LEFT JOIN users u ON b.user_id = u.id
		WHERE b.pnr=$1`, pnr)

	var (
		b        domain.Booking
		dep, arr *time.Time
	)
	if err := row.Scan(&b.ID, &b.PNR, &b.UserID, &b.FlightID, &b.Status, &b.CreatedAt,
		&b.FlightNumber, &b.Source, &b.Destination, &dep, &arr,
		&b.PassengerName, &b.PassengerEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("booking not found with this PNR")
		}
		return nil, err
	}
	if dep != nil {
		b.DepartureTime = *dep
	}
	if arr != nil {
		b.ArrivalTime = *arr
	}
	return &b, nil
}

// Cancel flips the booking to CANCELLED in a single conditional UPDATE so that
// two concurrent cancels cannot both succeed. Rows are never deleted, so an
// unaffected row means the booking was already cancelled.
func (r *PGBookingRepository) Cancel(ctx context.Context, pnr string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE bookings SET status=$1 WHERE pnr=$2 AND status <> $1`,
		domain.BookingStatusCancelled, pnr)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewInvalidState("booking is already cancelled")
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
