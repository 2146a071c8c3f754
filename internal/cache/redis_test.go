package cache

import (
	"testing"
	"time"

	"github.com/Domenick1991/turfbooking/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379", DayMarkerTTLHours: 48})
	defer c.Close()

	assert.NotNil(t, c.Client())
	assert.Equal(t, 48*time.Hour, c.dayMarkerTTL)
}

func TestKeys(t *testing.T) {
	d := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "slots:day:2024-06-01", dayKey(d))
	assert.Equal(t, "auth:revoked:abc", revokedKey("abc"))
}
