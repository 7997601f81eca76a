package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/utils"
)

type redisPublisher struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisPublisher connects to Redis using REDIS_ADDR. Callers that want a
// degraded-but-running process on connection failure should fall back to
// NewNoopPublisher themselves.
func NewRedisPublisher(log *logger.Logger) (Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisPublisher{
		log: log.With("service", "RedisEventPublisher"),
		rdb: rdb,
	}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, topic string, payload interface{}) {
	if p == nil || p.rdb == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn("Failed to marshal event payload", "topic", topic, "error", err)
		return
	}
	if err := p.rdb.Publish(ctx, topic, raw).Err(); err != nil {
		p.log.Warn("Failed to publish event", "topic", topic, "error", err)
	}
}
