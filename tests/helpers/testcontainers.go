package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/signingconnect/signingconnect-api/data"
	"github.com/signingconnect/signingconnect-api/internal/utils"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "signingconnect"
	postgresPassword = "signingconnect-test"
)

// TestContainers tracks the containers a test run owns.
type TestContainers struct {
	DBContainer testcontainers.Container
	Host        string
	Port        nat.Port
	Database    string
}

// Terminate tears down everything this run created.
func (tc *TestContainers) Terminate(t *testing.T) {
	t.Helper()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate Postgres: %v", err)
		}
	}
}

// StartPostgres launches a disposable Postgres container with a
// uniquely named database and applies the canonical schema.
func StartPostgres(t *testing.T) *TestContainers {
	t.Helper()
	ctx := context.Background()

	dbName := "sc_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       dbName,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres: %v", err)
	}

	tc := &TestContainers{DBContainer: container, Database: dbName}

	host, err := container.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		t.Fatalf("Failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		tc.Terminate(t)
		t.Fatalf("Failed to resolve mapped port: %v", err)
	}
	tc.Host = host
	tc.Port = port

	if err := utils.PingHost(host, port.Port(), 30*time.Second); err != nil {
		tc.Terminate(t)
		t.Fatalf("Postgres never became reachable: %v", err)
	}

	if err := applySchema(tc.DSN()); err != nil {
		tc.Terminate(t)
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return tc
}

// DSN returns the connection string for the container database.
func (tc *TestContainers) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, tc.Host, tc.Port.Port(), tc.Database)
}

// applySchema runs the embedded DDL against a fresh database. Retries
// briefly since the port can accept connections before Postgres is
// ready for queries.
func applySchema(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	deadline := time.Now().Add(30 * time.Second)
	for {
		err = db.Ping()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not ready: %w", err)
		}
		time.Sleep(500 * time.Millisecond)
	}

	_, err = db.Exec(data.InitdbPostgresSchema)
	return err
}
