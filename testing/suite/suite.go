package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
)

const (
	containerLifetime = 120 // seconds
	startupTimeout    = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite bundles what integration tests need: a logger and a Redis client
// backed by a throwaway container.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New starts a fresh Redis container for t, or skips t when Docker is not
// available. Everything is torn down in t.Cleanup.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	client := startRedis(ctx, t, pool)

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		Storage: client,
	}
}

func startRedis(ctx context.Context, t *testing.T, pool *dockertest.Pool) *redis.Client {
	t.Helper()

	container, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}

	// Expire only fails on an unknown container.
	_ = container.Expire(containerLifetime)

	addr := container.GetHostPort(redisPort)
	pool.MaxWait = startupTimeout

	var client *redis.Client
	err = pool.Retry(func() error {
		var dialErr error
		client, dialErr = storage.New(ctx, addr)
		return dialErr
	})
	if err != nil {
		_ = pool.Purge(container)
		t.Fatalf("redis at %s never came up: %v", addr, err)
	}

	t.Cleanup(func() {
		_ = client.Close()

		if err := pool.Purge(container); err != nil {
			t.Errorf("remove redis container: %v", err)
		}
	})

	return client
}
