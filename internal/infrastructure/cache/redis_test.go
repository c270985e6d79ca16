package cache

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/notegraph-dev/notegraph/errors"
)

func TestRedisGetWrapsTransportFailure(t *testing.T) {
	rs := &RedisStore{client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})}

	// A canceled context fails the call without a reachable server.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := rs.Get(ctx, "analytics:efficiency")
	if err == nil {
		t.Fatal("expected error")
	}

	var appErr errors.AppError
	if !goerrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != errors.ErrorCode_INTEGRATION_CACHE_FAILED {
		t.Errorf("unexpected code %s", appErr.Code)
	}
}
