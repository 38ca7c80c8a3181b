package http

import (
	"context"

	"github.com/labstack/echo/v4"

	"roomsync/entity"
)

type BookingsReadModel interface {
	BookingsForYear(ctx context.Context, hotelID int64, year int) ([]entity.Event, error)
}

// DashboardServer serves aggregated occupancy views over the mirror.
type DashboardServer struct {
	addr     string
	e        *echo.Echo
	bookings BookingsReadModel
}

func NewDashboardServer(addr string, bookings BookingsReadModel) *DashboardServer {
	e := newEcho("roomsync-dashboard")

	server := &DashboardServer{
		addr:     addr,
		e:        e,
		bookings: bookings,
	}

	e.GET("/dashboard", server.GetDashboard)

	return server
}

func (s *DashboardServer) Run(ctx context.Context) error {
	return run(ctx, s.e, s.addr)
}
