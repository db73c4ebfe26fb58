package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayarmananan1994/notifyme/pkg/config"
)

func TestNewRedisClientPing(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb := NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	defer rdb.Close()

	require.NoError(t, Ping(context.Background(), rdb))
}

func TestPingFailsWhenServerGone(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	defer rdb.Close()

	mr.Close()

	err := Ping(context.Background(), rdb)
	assert.Error(t, err)
}
