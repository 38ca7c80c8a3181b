package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"roomsync/db"
	"roomsync/db/mirror"
	"roomsync/http"
	"roomsync/syncer"
)

// Dashboard mirrors provider events into its own store and serves the
// aggregated occupancy views. The sync loop and the HTTP server share
// nothing but the mirror itself.
type Dashboard struct {
	db         *sqlx.DB
	httpServer *http.DashboardServer
	syncLoop   *syncer.Loop
}

func NewDashboard(addr string, dbConn *sqlx.DB, fetcher syncer.EventsFetcher, syncInterval time.Duration) Dashboard {
	mirrorRepo := mirror.NewPostgresRepository(dbConn)

	return Dashboard{
		db:         dbConn,
		httpServer: http.NewDashboardServer(addr, mirrorRepo),
		syncLoop:   syncer.NewLoop(mirrorRepo, fetcher, syncInterval),
	}
}

func (s Dashboard) Run(ctx context.Context) error {
	if err := db.InitializeMirrorSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.syncLoop.Run(ctx)
	})

	g.Go(func() error {
		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
