package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"roomsync/config"
	"roomsync/db"
	"roomsync/service"
	"roomsync/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logrus.SetLevel(logrus.InfoLevel)

	cfg, err := config.LoadProvider()
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	if cfg.JaegerEndpoint != "" {
		tp := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint, "roomsync-provider")
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	dbConn, err := db.Connect(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}
	defer dbConn.Close()

	svc := service.NewProvider(cfg.HTTPAddr, dbConn)
	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("provider terminated")
	}
}
