package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"roomsync/db"
	"roomsync/db/events"
	"roomsync/http"
)

// Provider is the system of record: it owns the events table and serves
// the query and create-or-cancel API.
type Provider struct {
	db         *sqlx.DB
	httpServer *http.ProviderServer
}

func NewProvider(addr string, dbConn *sqlx.DB) Provider {
	eventsRepo := events.NewPostgresRepository(dbConn)

	return Provider{
		db:         dbConn,
		httpServer: http.NewProviderServer(addr, eventsRepo),
	}
}

func (s Provider) Run(ctx context.Context) error {
	if err := db.InitializeProviderSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
