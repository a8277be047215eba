//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/userdir/database"
	"github.com/dtroode/userdir/internal/model"
	repo "github.com/dtroode/userdir/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "userdir_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/userdir_test?sslmode=disable", host, port.Port())

	if err := database.Migrate(ctx, dsn); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// Single-node test database: write and read pools share the endpoint.
	ur := repo.NewUserRepository(conn, conn)

	t.Run("create_and_get", func(t *testing.T) {
		saved, err := ur.Create(ctx, model.User{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		require.NotZero(t, saved.ID)
		require.Equal(t, "alice@example.com", saved.Email)

		got, err := ur.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, saved, got)
	})

	t.Run("get_missing_returns_not_found", func(t *testing.T) {
		_, err := ur.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("duplicate_email_returns_conflict", func(t *testing.T) {
		_, err := ur.Create(ctx, model.User{Name: "Bob", Email: "bob@example.com"})
		require.NoError(t, err)

		_, err = ur.Create(ctx, model.User{Name: "Bobby", Email: "bob@example.com"})
		require.ErrorIs(t, err, model.ErrConflict)

		got, err := ur.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.Name)
	})

	t.Run("list_all", func(t *testing.T) {
		users, err := ur.ListAll(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(users), 2)
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	// Running migrations again against an up-to-date schema is a no-op.
	require.NoError(t, database.Migrate(ctx, dsn))
}
