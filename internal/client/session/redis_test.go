package session

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Redis tests need a live server: AUTHFLOW_TEST_REDIS_ADDR=localhost:6379.
func TestRedisStore_Contract(t *testing.T) {
	addr := os.Getenv("AUTHFLOW_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("AUTHFLOW_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := ConnectRedis(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	n := 0
	runStoreContract(t, func() Store {
		n++
		s := NewRedisStore(client, "authflow-test:"+t.Name()+":"+string(rune('a'+n))+":", 0)
		t.Cleanup(func() { _ = s.Clear(ctx) })
		return s
	})
}

func TestConnectRedis_Unreachable(t *testing.T) {
	_, err := ConnectRedis(context.Background(), RedisConfig{Addr: "127.0.0.1:1", Timeout: 200_000_000})
	require.Error(t, err)
}
