package entity

import (
	"time"
)

// RPGStatus tells whether an event represents a booking or a cancellation.
// The integer values are part of the wire format.
type RPGStatus int

const (
	StatusBooking      RPGStatus = 1
	StatusCancellation RPGStatus = 2
)

func (s RPGStatus) Valid() bool {
	return s == StatusBooking || s == StatusCancellation
}

// CreateEvent is the write shape of an event: everything the caller
// provides, without a store-assigned identifier.
type CreateEvent struct {
	HotelID     int64     `json:"hotel_id" db:"hotel_id"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	RPGStatus   RPGStatus `json:"rpg_status" db:"rpg_status"`
	RoomID      string    `json:"room_id" db:"room_id"`
	NightOfStay Date      `json:"night_of_stay" db:"night_of_stay"`
}

// Event is the read shape: a stored event plus the identifier assigned by
// the owning store. Identifiers are local to each store and must not be
// carried between the provider and the mirror.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	HotelID     int64     `json:"hotel_id" db:"hotel_id"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	RPGStatus   RPGStatus `json:"rpg_status" db:"rpg_status"`
	RoomID      string    `json:"room_id" db:"room_id"`
	NightOfStay Date      `json:"night_of_stay" db:"night_of_stay"`
}

// AsCreate strips the store-assigned identifier, leaving the write shape
// that another store can ingest under its own identifier space.
func (e Event) AsCreate() CreateEvent {
	return CreateEvent{
		HotelID:     e.HotelID,
		Timestamp:   e.Timestamp,
		RPGStatus:   e.RPGStatus,
		RoomID:      e.RoomID,
		NightOfStay: e.NightOfStay,
	}
}

// EventFilter is a set of optional, AND-composed filters for event queries.
type EventFilter struct {
	HotelID        *int64
	UpdatedGTE     *time.Time
	UpdatedLTE     *time.Time
	RPGStatus      *RPGStatus
	RoomID         *string
	NightOfStayGTE *Date
	NightOfStayLTE *Date
}

// DashboardPeriod selects the bucketing granularity of the dashboard view.
type DashboardPeriod string

const (
	PeriodMonth DashboardPeriod = "month"
	PeriodDay   DashboardPeriod = "day"
)

func (p DashboardPeriod) Valid() bool {
	return p == PeriodMonth || p == PeriodDay
}
