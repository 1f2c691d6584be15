package server

import (
	"testing"

	icache "SignalDesk/internal/service/cache"
	"SignalDesk/pkg/config"
)

func TestResponseCacheSelection(t *testing.T) {
	cfg := &config.Config{}
	if _, ok := responseCache(cfg).(*icache.TTLCache); !ok {
		t.Fatal("expected in-process TTL cache when redis is disabled")
	}

	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Host = "localhost"
	cfg.Cache.Redis.Port = 6379
	if _, ok := responseCache(cfg).(*icache.RedisCache); !ok {
		t.Fatal("expected redis-backed cache when redis is enabled")
	}
}
