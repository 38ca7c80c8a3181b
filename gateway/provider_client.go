package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"roomsync/entity"
)

// ProviderClient fetches events from the data provider's REST API. Each
// call is a single bounded attempt; retrying is the caller's concern.
type ProviderClient struct {
	baseURL string
	client  *http.Client
}

func NewProviderClient(baseURL string, timeout time.Duration) ProviderClient {
	return ProviderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchEvents returns all provider events updated within [from, to],
// inclusive on both ends. Provider-assigned identifiers are cleared: they
// are meaningless in the mirror's identifier space. Network failures and
// non-200 responses wrap entity.ErrTransport.
func (c ProviderClient) FetchEvents(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	params := url.Values{}
	params.Set("updated__gte", from.Format(time.RFC3339))
	params.Set("updated__lte", to.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not build events request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code for GET /events: %d", entity.ErrTransport, resp.StatusCode)
	}

	var events []entity.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: could not decode events: %s", entity.ErrTransport, err)
	}

	for i := range events {
		events[i].ID = 0
	}

	return events, nil
}
