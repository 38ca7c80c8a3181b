package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomsync/entity"
)

type eventsRepoStub struct {
	findAll        func(filter entity.EventFilter) ([]entity.Event, error)
	createOrCancel func(event entity.CreateEvent) (entity.Event, error)
}

func (s eventsRepoStub) FindAll(_ context.Context, filter entity.EventFilter) ([]entity.Event, error) {
	return s.findAll(filter)
}

func (s eventsRepoStub) CreateOrCancel(_ context.Context, event entity.CreateEvent) (entity.Event, error) {
	return s.createOrCancel(event)
}

func TestProviderServer_post_events_creates_booking(t *testing.T) {
	repo := eventsRepoStub{
		createOrCancel: func(event entity.CreateEvent) (entity.Event, error) {
			require.Equal(t, entity.StatusBooking, event.RPGStatus)
			return entity.Event{
				ID:          1,
				HotelID:     event.HotelID,
				Timestamp:   event.Timestamp,
				RPGStatus:   event.RPGStatus,
				RoomID:      event.RoomID,
				NightOfStay: event.NightOfStay,
			}, nil
		},
	}
	server := NewProviderServer(":0", repo)

	body := `{"hotel_id":1,"timestamp":"2022-01-01T10:00:00Z","rpg_status":1,"room_id":"0","night_of_stay":"2022-01-15"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	server.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var stored entity.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, int64(1), stored.ID)
	assert.Equal(t, "0", stored.RoomID)
	assert.Equal(t, "2022-01-15", stored.NightOfStay.String())
}

func TestProviderServer_post_events_conflict_and_not_found(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "duplicate booking", err: entity.ErrDuplicate, wantCode: http.StatusConflict},
		{name: "cancel unknown booking", err: entity.ErrNotFound, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := eventsRepoStub{
				createOrCancel: func(entity.CreateEvent) (entity.Event, error) {
					return entity.Event{}, tt.err
				},
			}
			server := NewProviderServer(":0", repo)

			body := `{"hotel_id":1,"timestamp":"2022-01-01T10:00:00Z","rpg_status":1,"room_id":"0","night_of_stay":"2022-01-15"}`
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			server.e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestProviderServer_post_events_rejects_invalid_status(t *testing.T) {
	server := NewProviderServer(":0", eventsRepoStub{})

	body := `{"hotel_id":1,"timestamp":"2022-01-01T10:00:00Z","rpg_status":9,"room_id":"0","night_of_stay":"2022-01-15"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	server.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProviderServer_post_events_requires_all_fields(t *testing.T) {
	server := NewProviderServer(":0", eventsRepoStub{})

	// incomplete bodies must not persist zero-valued events
	for _, body := range []string{
		`{"hotel_id":1,"rpg_status":1,"room_id":"0"}`,
		`{"hotel_id":1,"rpg_status":1,"room_id":"0","night_of_stay":"2022-01-15"}`,
		`{"hotel_id":1,"timestamp":"2022-01-01T10:00:00Z","rpg_status":1,"room_id":"0"}`,
		`{"hotel_id":1,"timestamp":"2022-01-01T10:00:00Z","rpg_status":1,"night_of_stay":"2022-01-15"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		server.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestProviderServer_get_events_binds_filters(t *testing.T) {
	var gotFilter entity.EventFilter
	repo := eventsRepoStub{
		findAll: func(filter entity.EventFilter) ([]entity.Event, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	server := NewProviderServer(":0", repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/events?hotel_id=1&updated__gte=2022-01-01T00:00:00Z&updated__lte=2022-01-02T00:00:00Z&rpg_status=1&room_id=5&night_of_stay__gte=2022-01-10&night_of_stay__lte=2022-01-20", nil)

	server.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	require.NotNil(t, gotFilter.HotelID)
	assert.Equal(t, int64(1), *gotFilter.HotelID)
	require.NotNil(t, gotFilter.UpdatedGTE)
	assert.True(t, gotFilter.UpdatedGTE.Equal(time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, gotFilter.UpdatedLTE)
	require.NotNil(t, gotFilter.RPGStatus)
	assert.Equal(t, entity.StatusBooking, *gotFilter.RPGStatus)
	require.NotNil(t, gotFilter.RoomID)
	assert.Equal(t, "5", *gotFilter.RoomID)
	require.NotNil(t, gotFilter.NightOfStayGTE)
	assert.Equal(t, "2022-01-10", gotFilter.NightOfStayGTE.String())
	require.NotNil(t, gotFilter.NightOfStayLTE)
}

func TestProviderServer_get_events_rejects_malformed_params(t *testing.T) {
	server := NewProviderServer(":0", eventsRepoStub{})

	for _, query := range []string{
		"hotel_id=abc",
		"updated__gte=not-a-timestamp",
		"rpg_status=9",
		"night_of_stay__gte=15-01-2022",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events?"+query, nil)

		server.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}
