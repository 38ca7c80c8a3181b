package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"roomsync/entity"
)

const uniqueViolation = pq.ErrorCode("23505")

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &PostgresRepository{db: db}
}

// FindAll returns events matching the filter, sorted ascending by timestamp.
func (r *PostgresRepository) FindAll(ctx context.Context, filter entity.EventFilter) ([]entity.Event, error) {
	query := `SELECT id, hotel_id, timestamp, rpg_status, room_id, night_of_stay FROM events`

	var (
		conds []string
		args  []any
	)
	add := func(expr string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.HotelID != nil {
		add("hotel_id = $%d", *filter.HotelID)
	}
	if filter.UpdatedGTE != nil {
		add("timestamp >= $%d", *filter.UpdatedGTE)
	}
	if filter.UpdatedLTE != nil {
		add("timestamp <= $%d", *filter.UpdatedLTE)
	}
	if filter.RPGStatus != nil {
		add("rpg_status = $%d", *filter.RPGStatus)
	}
	if filter.RoomID != nil {
		add("room_id = $%d", *filter.RoomID)
	}
	if filter.NightOfStayGTE != nil {
		add("night_of_stay >= $%d", *filter.NightOfStayGTE)
	}
	if filter.NightOfStayLTE != nil {
		add("night_of_stay <= $%d", *filter.NightOfStayLTE)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp ASC"

	var events []entity.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("could not query events: %w", err)
	}

	return events, nil
}

// CreateOrCancel applies one event to the store. A booking inserts a new
// row; booking an already-booked room fails with entity.ErrDuplicate. A
// cancellation mutates the room's existing row in place; cancelling an
// unknown room fails with entity.ErrNotFound. Exactly one write is
// committed per call.
func (r *PostgresRepository) CreateOrCancel(ctx context.Context, event entity.CreateEvent) (entity.Event, error) {
	if event.RPGStatus == entity.StatusCancellation {
		return r.cancel(ctx, event)
	}
	return r.create(ctx, event)
}

func (r *PostgresRepository) create(ctx context.Context, event entity.CreateEvent) (entity.Event, error) {
	stored := entity.Event{
		HotelID:     event.HotelID,
		Timestamp:   event.Timestamp,
		RPGStatus:   event.RPGStatus,
		RoomID:      event.RoomID,
		NightOfStay: event.NightOfStay,
	}

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO events (hotel_id, timestamp, rpg_status, room_id, night_of_stay)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, event.HotelID, event.Timestamp, event.RPGStatus, event.RoomID, event.NightOfStay).Scan(&stored.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return entity.Event{}, fmt.Errorf("room %s: %w", event.RoomID, entity.ErrDuplicate)
	}
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not store event: %w", err)
	}

	return stored, nil
}

// cancel locks the room's row for the whole lookup-then-update, so
// concurrent cancellations of the same room cannot race each other.
// Cancelling an already-cancelled room is a no-op returning the stored row.
func (r *PostgresRepository) cancel(ctx context.Context, event entity.CreateEvent) (stored entity.Event, err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	var existing entity.Event
	err = tx.GetContext(ctx, &existing, `
		SELECT id, hotel_id, timestamp, rpg_status, room_id, night_of_stay
		FROM events
		WHERE hotel_id = $1 AND room_id = $2
		FOR UPDATE
	`, event.HotelID, event.RoomID)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("cannot cancel unknown booking for room %s: %w", event.RoomID, entity.ErrNotFound)
		return entity.Event{}, err
	}
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not look up booking: %w", err)
	}

	if existing.RPGStatus == entity.StatusCancellation {
		return existing, nil
	}

	// The cancellation's timestamp and night_of_stay replace the booking's.
	_, err = tx.ExecContext(ctx, `
		UPDATE events
		SET rpg_status = $1, timestamp = $2, night_of_stay = $3
		WHERE id = $4
	`, entity.StatusCancellation, event.Timestamp, event.NightOfStay, existing.ID)
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not cancel booking: %w", err)
	}

	existing.RPGStatus = entity.StatusCancellation
	existing.Timestamp = event.Timestamp
	existing.NightOfStay = event.NightOfStay

	return existing, nil
}
