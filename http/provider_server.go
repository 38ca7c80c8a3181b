package http

import (
	"context"

	"github.com/labstack/echo/v4"

	"roomsync/entity"
)

type EventsRepository interface {
	FindAll(ctx context.Context, filter entity.EventFilter) ([]entity.Event, error)
	CreateOrCancel(ctx context.Context, event entity.CreateEvent) (entity.Event, error)
}

// ProviderServer exposes the system-of-record API: event queries and the
// create-or-cancel mutation.
type ProviderServer struct {
	addr       string
	e          *echo.Echo
	eventsRepo EventsRepository
}

func NewProviderServer(addr string, eventsRepo EventsRepository) *ProviderServer {
	e := newEcho("roomsync-provider")

	server := &ProviderServer{
		addr:       addr,
		e:          e,
		eventsRepo: eventsRepo,
	}

	e.GET("/events", server.GetEvents)
	e.POST("/events", server.PostEvents)

	return server
}

func (s *ProviderServer) Run(ctx context.Context) error {
	return run(ctx, s.e, s.addr)
}
