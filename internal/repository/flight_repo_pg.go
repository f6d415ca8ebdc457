package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, id int64, patch FlightPatch) error
	Delete(ctx context.Context, id int64) error
}

// FlightPatch carries the optional fields of a partial update; nil fields
// keep the stored value.
type FlightPatch struct {
	FlightNumber  *string
	Source        *string
	Destination   *string
	DepartureTime *string
	ArrivalTime   *string
	Price         *float64
	FlightType    *string
}

const flightColumns = `id, flight_number, source, destination, departure_time, arrival_time, price, flight_type, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("flight not found")
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Source != "" {
		add(`source ILIKE '%%' || $%d || '%%'`, filter.Source)
	}
	if filter.Destination != "" {
		add(`destination ILIKE '%%' || $%d || '%%'`, filter.Destination)
	}
	if filter.DepartureDate != "" {
		add(`departure_time::date = $%d::date`, filter.DepartureDate)
	}
	if filter.FlightType != "" {
		add(`flight_type = $%d`, filter.FlightType)
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, source, destination, departure_time, arrival_time, price, flight_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Source, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.FlightType).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, id int64, patch FlightPatch) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET
		flight_number = COALESCE($1, flight_number),
		source = COALESCE($2, source),
		destination = COALESCE($3, destination),
		departure_time = COALESCE($4::timestamptz, departure_time),
		arrival_time = COALESCE($5::timestamptz, arrival_time),
		price = COALESCE($6, price),
		flight_type = COALESCE($7, flight_type),
		updated_at = now()
		WHERE id=$8`,
		patch.FlightNumber, patch.Source, patch.Destination, patch.DepartureTime, patch.ArrivalTime, patch.Price, patch.FlightType, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("flight not found")
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("flight not found")
	}
	return nil
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.Source, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.FlightType, &f.CreatedAt, &f.UpdatedAt)
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
