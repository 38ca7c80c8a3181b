package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"roomsync/config"
	"roomsync/db"
	"roomsync/gateway"
	"roomsync/service"
	"roomsync/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logrus.SetLevel(logrus.InfoLevel)

	cfg, err := config.LoadDashboard()
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	if cfg.JaegerEndpoint != "" {
		tp := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint, "roomsync-dashboard")
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	dbConn, err := db.Connect(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}
	defer dbConn.Close()

	providerClient := gateway.NewProviderClient(cfg.ProviderURL, cfg.FetchTimeout)

	svc := service.NewDashboard(cfg.HTTPAddr, dbConn, providerClient, cfg.SyncInterval)
	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("dashboard terminated")
	}
}
