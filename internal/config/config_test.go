package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdminName(t *testing.T) {
	cfg := Config{AdminUsers: []string{"sadi", "Mir"}}

	assert.True(t, cfg.IsAdminName("sadi"))
	assert.True(t, cfg.IsAdminName("SADI"))
	assert.True(t, cfg.IsAdminName("mir"))
	assert.False(t, cfg.IsAdminName("mallory"))
	assert.False(t, cfg.IsAdminName(""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b "))
	assert.Equal(t, []string{"a"}, splitList("a,,"))
	assert.Empty(t, splitList(""))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	// TTL is raised to cover several refill intervals.
	assert.GreaterOrEqual(t, cfg.TTL, 5*cfg.RefillInterval)
}
