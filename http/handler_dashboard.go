package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"roomsync/aggregate"
	"roomsync/entity"
)

func (s *DashboardServer) GetDashboard(c echo.Context) error {
	hotelID, err := strconv.ParseInt(c.QueryParam("hotel_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "hotel_id is required and must be an integer")
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year is required and must be an integer")
	}

	period := entity.DashboardPeriod(c.QueryParam("period"))
	if !period.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, `period must be "month" or "day"`)
	}

	events, err := s.bookings.BookingsForYear(c.Request().Context(), hotelID, year)
	if err != nil {
		return fmt.Errorf("could not load bookings: %w", err)
	}

	var buckets map[string]int
	switch period {
	case entity.PeriodMonth:
		buckets = aggregate.ByMonth(events, year)
	case entity.PeriodDay:
		buckets = aggregate.ByDay(events, year)
	}

	return c.JSON(http.StatusOK, buckets)
}
