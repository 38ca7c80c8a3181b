package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomsync/entity"
)

type bookingsReadModelStub struct {
	events []entity.Event
}

func (s bookingsReadModelStub) BookingsForYear(_ context.Context, hotelID int64, year int) ([]entity.Event, error) {
	return s.events, nil
}

func TestDashboardServer_month_view(t *testing.T) {
	readModel := bookingsReadModelStub{
		events: []entity.Event{
			{HotelID: 1, RPGStatus: entity.StatusBooking, RoomID: "0", NightOfStay: entity.NewDate(2024, time.January, 15)},
			{HotelID: 1, RPGStatus: entity.StatusBooking, RoomID: "0", NightOfStay: entity.NewDate(2024, time.January, 20)},
			{HotelID: 1, RPGStatus: entity.StatusBooking, RoomID: "2", NightOfStay: entity.NewDate(2024, time.February, 10)},
		},
	}
	server := NewDashboardServer(":0", readModel)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?hotel_id=1&period=month&year=2024", nil)

	server.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var buckets map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	require.Len(t, buckets, 12)
	assert.Equal(t, 2, buckets["2024-01-01"])
	assert.Equal(t, 1, buckets["2024-02-01"])
	assert.Equal(t, 0, buckets["2024-03-01"])
}

func TestDashboardServer_day_view(t *testing.T) {
	readModel := bookingsReadModelStub{
		events: []entity.Event{
			{HotelID: 1, RPGStatus: entity.StatusBooking, RoomID: "0", NightOfStay: entity.NewDate(2024, time.January, 15)},
		},
	}
	server := NewDashboardServer(":0", readModel)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?hotel_id=1&period=day&year=2024", nil)

	server.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var buckets map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	require.Len(t, buckets, 366)
	assert.Equal(t, 1, buckets["2024-01-15"])
}

func TestDashboardServer_rejects_invalid_params(t *testing.T) {
	server := NewDashboardServer(":0", bookingsReadModelStub{})

	for _, query := range []string{
		"period=month&year=2024",
		"hotel_id=1&year=2024",
		"hotel_id=1&period=week&year=2024",
		"hotel_id=1&period=month",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard?"+query, nil)

		server.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}
