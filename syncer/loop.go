package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"roomsync/entity"
	"roomsync/metrics"
)

// DefaultInterval is the pause between fetch-and-ingest cycles.
const DefaultInterval = 5 * time.Second

type EventsFetcher interface {
	FetchEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error)
}

type MirrorRepository interface {
	Store(ctx context.Context, event entity.CreateEvent) (entity.Event, error)
	NewestEvent(ctx context.Context) (entity.Event, error)
}

// Loop copies provider events into the mirror, one bounded window at a
// time. The window's lower bound is the watermark: the point up to which
// every provider event is known to be mirrored. The watermark only
// advances after a fully successful cycle, so a failed fetch or ingest
// never leaves a gap behind it.
type Loop struct {
	mirror   MirrorRepository
	fetcher  EventsFetcher
	interval time.Duration
	now      func() time.Time
}

func NewLoop(mirror MirrorRepository, fetcher EventsFetcher, interval time.Duration) *Loop {
	if mirror == nil {
		panic("mirror repository is nil")
	}
	if fetcher == nil {
		panic("fetcher is nil")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Loop{
		mirror:   mirror,
		fetcher:  fetcher,
		interval: interval,
		now:      time.Now,
	}
}

// Run executes cycles until ctx is cancelled. Upstream failures are
// logged and retried on the next tick with the same watermark; they never
// terminate the loop.
func (l *Loop) Run(ctx context.Context) error {
	from, err := l.startingWatermark(ctx)
	if err != nil {
		return fmt.Errorf("could not determine starting watermark: %w", err)
	}

	logrus.WithField("watermark", from).Info("starting event sync loop")
	metrics.SyncWatermark.Set(float64(from.Unix()))

	for {
		to := l.now()

		if err := l.runCycle(ctx, from, to); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logrus.WithError(err).WithField("from", from).Error("sync cycle failed")
			metrics.SyncCycles.WithLabelValues("failure").Inc()
		} else {
			from = to
			metrics.SyncCycles.WithLabelValues("success").Inc()
			metrics.SyncWatermark.Set(float64(from.Unix()))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.interval):
		}
	}
}

func (l *Loop) runCycle(ctx context.Context, from, to time.Time) error {
	ctx, span := otel.Tracer("").Start(ctx, "SyncCycle")
	defer span.End()

	events, err := l.fetcher.FetchEvents(ctx, from, to)
	if err != nil {
		return fmt.Errorf("could not fetch events: %w", err)
	}

	for _, event := range events {
		// AsCreate drops the provider-assigned id; the mirror assigns its own.
		if _, err := l.mirror.Store(ctx, event.AsCreate()); err != nil {
			return fmt.Errorf("could not ingest event for room %s: %w", event.RoomID, err)
		}
		metrics.EventsIngested.Inc()
	}

	if len(events) > 0 {
		logrus.WithFields(logrus.Fields{
			"from":  from,
			"to":    to,
			"count": len(events),
		}).Info("ingested provider events")
	}

	return nil
}

// startingWatermark resumes one second past the newest mirrored event, so
// the boundary event is not fetched again. An empty mirror bootstraps
// from the start of the current year; older data needs a manual backfill.
func (l *Loop) startingWatermark(ctx context.Context) (time.Time, error) {
	newest, err := l.mirror.NewestEvent(ctx)
	if errors.Is(err, entity.ErrNotFound) {
		return time.Date(l.now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	if err != nil {
		return time.Time{}, err
	}

	return newest.Timestamp.Add(time.Second), nil
}
