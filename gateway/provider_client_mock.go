package gateway

import (
	"context"
	"sync"
	"time"

	"roomsync/entity"
)

// ProviderMock serves canned events filtered by the requested window, the
// way the real provider filters by update time.
type ProviderMock struct {
	mock sync.Mutex

	Events []entity.Event
	Err    error

	windows [][2]time.Time
}

func (c *ProviderMock) FetchEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.windows = append(c.windows, [2]time.Time{from, to})

	if c.Err != nil {
		return nil, c.Err
	}

	var matched []entity.Event
	for _, event := range c.Events {
		if event.Timestamp.Before(from) || event.Timestamp.After(to) {
			continue
		}
		event.ID = 0
		matched = append(matched, event)
	}

	return matched, nil
}

// FetchedWindows returns every window requested so far.
func (c *ProviderMock) FetchedWindows() [][2]time.Time {
	c.mock.Lock()
	defer c.mock.Unlock()

	return append([][2]time.Time(nil), c.windows...)
}
