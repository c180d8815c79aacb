package redisx

import (
	"context"
	"testing"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(Config{Addr: mr.Addr()}, logger.GetLogger("redis"))
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, HealthCheck(context.Background(), client))
}

func TestConnect_InvalidConfig(t *testing.T) {
	_, err := Connect(Config{}, logger.GetLogger("redis"))
	assert.Error(t, err)
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(Config{Addr: addr}, logger.GetLogger("redis"))
	assert.Error(t, err)
}
