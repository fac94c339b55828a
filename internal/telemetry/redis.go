// Package telemetry instruments infrastructure clients.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// MonitorRedis adds OpenTelemetry tracing and metrics plus debug logging
// of every command to r.
func MonitorRedis(r redis.UniversalClient, logger *slog.Logger) error {
	if err := redisotel.InstrumentTracing(r); err != nil {
		return fmt.Errorf("instrument tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(r); err != nil {
		return fmt.Errorf("instrument metrics: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	r.AddHook(redisLog{logger: logger})
	return nil
}

type redisLog struct {
	logger *slog.Logger
}

func (l redisLog) DialHook(hook redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := hook(ctx, network, addr)
		if err != nil {
			l.logger.WarnContext(ctx, "redis: dial failed", "network", network, "addr", addr, "error", err)
		} else {
			l.logger.DebugContext(ctx, "redis: dialed", "network", network, "addr", addr)
		}
		return conn, err
	}
}

func (l redisLog) ProcessHook(hook redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := hook(ctx, cmd)
		if err != nil && err != redis.Nil {
			l.logger.WarnContext(ctx, "redis: command failed", "cmd", cmd.Name(), "error", err)
		} else {
			l.logger.DebugContext(ctx, "redis: processed", "cmd", cmd.Name())
		}
		return err
	}
}

func (l redisLog) ProcessPipelineHook(hook redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := hook(ctx, cmds)
		l.logger.DebugContext(ctx, "redis: pipeline processed", "cmds", len(cmds), "error", err)
		return err
	}
}

// Connect creates a client for addrs, instruments it and pings it.
func Connect(ctx context.Context, opts *redis.UniversalOptions, logger *slog.Logger) (redis.UniversalClient, error) {
	r := redis.NewUniversalClient(opts)
	if err := MonitorRedis(r, logger); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.Ping(ctx).Err(); err != nil {
		r.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return r, nil
}
