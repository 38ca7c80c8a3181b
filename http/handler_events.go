package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"roomsync/entity"
)

type postEventRequest struct {
	HotelID     int64            `json:"hotel_id"`
	Timestamp   time.Time        `json:"timestamp"`
	RPGStatus   entity.RPGStatus `json:"rpg_status"`
	RoomID      string           `json:"room_id"`
	NightOfStay entity.Date      `json:"night_of_stay"`
}

func (s *ProviderServer) GetEvents(c echo.Context) error {
	filter, err := bindEventFilter(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	events, err := s.eventsRepo.FindAll(c.Request().Context(), filter)
	if err != nil {
		return fmt.Errorf("could not list events: %w", err)
	}

	if events == nil {
		events = []entity.Event{}
	}

	return c.JSON(http.StatusOK, events)
}

func (s *ProviderServer) PostEvents(c echo.Context) error {
	var request postEventRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if !request.RPGStatus.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "rpg_status must be 1 (booking) or 2 (cancellation)")
	}
	if request.RoomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id is required")
	}
	if request.Timestamp.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "timestamp is required")
	}
	if request.NightOfStay.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "night_of_stay is required")
	}

	event, err := s.eventsRepo.CreateOrCancel(c.Request().Context(), entity.CreateEvent{
		HotelID:     request.HotelID,
		Timestamp:   request.Timestamp,
		RPGStatus:   request.RPGStatus,
		RoomID:      request.RoomID,
		NightOfStay: request.NightOfStay,
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found, can't cancel unknown booking")
		}
		if errors.Is(err, entity.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, "conflict: this room is already booked")
		}

		return fmt.Errorf("could not apply event: %w", err)
	}

	return c.JSON(http.StatusCreated, event)
}

func bindEventFilter(c echo.Context) (entity.EventFilter, error) {
	var filter entity.EventFilter

	if v := c.QueryParam("hotel_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid hotel_id %q", v)
		}
		filter.HotelID = &id
	}
	if v := c.QueryParam("updated__gte"); v != "" {
		t, err := parseTimestamp(v)
		if err != nil {
			return filter, err
		}
		filter.UpdatedGTE = &t
	}
	if v := c.QueryParam("updated__lte"); v != "" {
		t, err := parseTimestamp(v)
		if err != nil {
			return filter, err
		}
		filter.UpdatedLTE = &t
	}
	if v := c.QueryParam("rpg_status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !entity.RPGStatus(n).Valid() {
			return filter, fmt.Errorf("invalid rpg_status %q", v)
		}
		status := entity.RPGStatus(n)
		filter.RPGStatus = &status
	}
	if v := c.QueryParam("room_id"); v != "" {
		roomID := v
		filter.RoomID = &roomID
	}
	if v := c.QueryParam("night_of_stay__gte"); v != "" {
		d, err := entity.ParseDate(v)
		if err != nil {
			return filter, fmt.Errorf("invalid night_of_stay__gte %q", v)
		}
		filter.NightOfStayGTE = &d
	}
	if v := c.QueryParam("night_of_stay__lte"); v != "" {
		d, err := entity.ParseDate(v)
		if err != nil {
			return filter, fmt.Errorf("invalid night_of_stay__lte %q", v)
		}
		filter.NightOfStayLTE = &d
	}

	return filter, nil
}

// parseTimestamp accepts RFC3339 and zone-less ISO timestamps, which some
// upstream callers emit.
func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02T15:04:05", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
	}

	return t, nil
}
