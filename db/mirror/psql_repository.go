package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"roomsync/entity"
)

// PostgresRepository is the dashboard's append-only copy of provider
// events. Rows are never mutated and room_id is not unique here: every
// observed event becomes its own row.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Store(ctx context.Context, event entity.CreateEvent) (entity.Event, error) {
	stored := entity.Event{
		HotelID:     event.HotelID,
		Timestamp:   event.Timestamp,
		RPGStatus:   event.RPGStatus,
		RoomID:      event.RoomID,
		NightOfStay: event.NightOfStay,
	}

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO mirror_events (hotel_id, timestamp, rpg_status, room_id, night_of_stay)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, event.HotelID, event.Timestamp, event.RPGStatus, event.RoomID, event.NightOfStay).Scan(&stored.ID)
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not store mirrored event: %w", err)
	}

	return stored, nil
}

// NewestEvent returns the most recently observed event. Ties on timestamp
// resolve to the highest id, which is insert order.
func (r *PostgresRepository) NewestEvent(ctx context.Context) (entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `
		SELECT id, hotel_id, timestamp, rpg_status, room_id, night_of_stay
		FROM mirror_events
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Event{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not query newest event: %w", err)
	}

	return event, nil
}

// BookingsForYear returns the hotel's booking events whose night of stay
// falls within the given calendar year.
func (r *PostgresRepository) BookingsForYear(ctx context.Context, hotelID int64, year int) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.SelectContext(ctx, &events, `
		SELECT id, hotel_id, timestamp, rpg_status, room_id, night_of_stay
		FROM mirror_events
		WHERE hotel_id = $1
		  AND rpg_status = $2
		  AND night_of_stay >= $3
		  AND night_of_stay <= $4
		ORDER BY night_of_stay ASC
	`, hotelID, entity.StatusBooking, entity.NewDate(year, 1, 1), entity.NewDate(year, 12, 31))
	if err != nil {
		return nil, fmt.Errorf("could not query bookings for year %d: %w", year, err)
	}

	return events, nil
}
