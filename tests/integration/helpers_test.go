//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	redisTC "github.com/testcontainers/testcontainers-go/modules/redis"

	"T9-Keypad/internal/config"
)

func integrationEnabled() bool {
	return os.Getenv("INTEGRATION") == "1"
}

func setupMySQLDB(t *testing.T, ctx context.Context) *sqlx.DB {
	t.Helper()

	mysqlC, err := mysql.RunContainer(ctx,
		mysql.WithDatabase("t9_test"),
		mysql.WithUsername("root"),
		mysql.WithPassword("root"),
	)
	if err != nil {
		t.Fatalf("mysql container: %v", err)
	}
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	if err != nil {
		t.Fatalf("mysql host: %v", err)
	}
	port, err := mysqlC.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("mysql port: %v", err)
	}

	dsn := "root:root@tcp(" + host + ":" + port.Port() + ")/t9_test?parseTime=true&multiStatements=true"

	migrationsPath, err := findMigrationsPath()
	if err != nil {
		t.Fatalf("migrations path: %v", err)
	}
	m, err := migrate.New("file://"+filepath.ToSlash(migrationsPath), "mysql://"+dsn)
	if err != nil {
		t.Fatalf("migrate.New: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("migrate.Up: %v", err)
	}
	t.Cleanup(func() {
		_, _ = m.Close()
	})

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("sqlx open: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("sqlx ping: %v", err)
	}
	return db
}

func setupRedis(t *testing.T, ctx context.Context) *redis.Client {
	t.Helper()

	redisC, err := redisTC.RunContainer(ctx)
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	endpoint, err := redisC.Endpoint(ctx, "tcp")
	if err != nil {
		t.Fatalf("redis endpoint: %v", err)
	}
	endpoint = strings.TrimPrefix(endpoint, "tcp://")

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func findMigrationsPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(wd, "migrations")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return "", os.ErrNotExist
}

func baseConfig() *config.Config {
	cfg := config.Default()
	cfg.HTTP.ShutdownTimeout = 5 * time.Second
	return &cfg
}

func waitHTTP(t *testing.T, url string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", url)
}

func nilLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
