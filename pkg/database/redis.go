package database

import (
	"academic_portal_backend/internal/config"
	"academic_portal_backend/pkg/logger"
	"context"
	"net"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitRedis connects the relay client used for cross-instance event
// fan-out. The caller treats a connection failure as non-fatal.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	logger.Log.Info("redis connected", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return rdb, nil
}
