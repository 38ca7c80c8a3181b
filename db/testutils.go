package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB    *sqlx.DB
	getDbOnce sync.Once
)

// GetDb returns a shared database handle for repository tests. It connects
// to POSTGRES_URL when set, otherwise it starts a throwaway container.
// Both schemas are initialized so provider and mirror tests can share it.
// The handle outlives individual tests; a started container is reaped by
// the testcontainers ryuk sidecar once the test process exits.
func GetDb(t *testing.T) *sqlx.DB {
	getDbOnce.Do(func() {
		url := os.Getenv("POSTGRES_URL")
		if url == "" {
			var err error
			_, url, err = StartPostgresContainer()
			require.NoError(t, err)
		}

		var err error
		testDB, err = sqlx.Open("postgres", url)
		require.NoError(t, err)

		require.NoError(t, InitializeProviderSchema(testDB))
		require.NoError(t, InitializeMirrorSchema(testDB))
	})
	return testDB
}

func StartPostgresContainer() (testcontainers.Container, string, error) {
	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase("db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, "", err
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		return nil, "", err
	}

	return postgresContainer, connStr, nil
}
