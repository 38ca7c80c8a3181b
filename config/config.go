package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Provider struct {
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8080"`
	PostgresURL    string `envconfig:"POSTGRES_URL" required:"true"`
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT"`
}

type Dashboard struct {
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8081"`
	PostgresURL    string        `envconfig:"POSTGRES_URL" required:"true"`
	ProviderURL    string        `envconfig:"PROVIDER_URL" required:"true"`
	SyncInterval   time.Duration `envconfig:"SYNC_INTERVAL" default:"5s"`
	FetchTimeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"5s"`
	JaegerEndpoint string        `envconfig:"JAEGER_ENDPOINT"`
}

func LoadProvider() (Provider, error) {
	var c Provider
	err := envconfig.Process("", &c)
	return c, err
}

func LoadDashboard() (Dashboard, error) {
	var c Dashboard
	err := envconfig.Process("", &c)
	return c, err
}
