package health

import (
	"context"
	"fmt"
	"time"

	"energy-trading-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var startedAt = time.Now()

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// Snapshot is the liveness answer for GET /api/health.
type Snapshot struct {
	Status        string               `json:"status"`
	Message       string               `json:"message"`
	UptimeSeconds int64                `json:"uptime_seconds"`
	Dependencies  map[string]DepStatus `json:"dependencies"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"ping_ms,omitempty"`
}

// TrafficStats are the Redis-backed request counters for GET /api/health/stats.
// All zeros when Redis is not configured.
type TrafficStats struct {
	TotalRequests   int64  `json:"total_requests"`
	FailedRequests  int64  `json:"failed_requests"`
	AvgResponseTime string `json:"avg_response_time_ms"`
}

// Collect gathers liveness and dependency status.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Snapshot {
	snap := Snapshot{
		Status:        "ok",
		Message:       "Energy Trading API is running",
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		Dependencies:  make(map[string]DepStatus),
	}

	snap.Dependencies["database"] = ping(func() error {
		if db == nil {
			return errNotConfigured
		}
		return db.Ping()
	})
	snap.Dependencies["redis"] = ping(func() error {
		if rdb == nil {
			return errNotConfigured
		}
		return rdb.Ping(ctx).Err()
	})
	return snap
}

// CollectStats reads the traffic counters written by middleware.HealthMarker.
func CollectStats(ctx context.Context, rdb *redis.Client) TrafficStats {
	stats := TrafficStats{AvgResponseTime: "0"}
	if rdb == nil {
		return stats
	}

	stats.TotalRequests, _ = rdb.Get(ctx, middleware.KeyReqTotal).Int64()
	stats.FailedRequests, _ = rdb.Get(ctx, middleware.KeyReqErrors).Int64()
	totalTime, _ := rdb.Get(ctx, middleware.KeyResTime).Float64()
	resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Int64()
	if resCount > 0 {
		stats.AvgResponseTime = fmt.Sprintf("%.1f", totalTime/float64(resCount))
	}
	return stats
}

var errNotConfigured = fmt.Errorf("not configured")

func ping(fn func() error) DepStatus {
	start := time.Now()
	if err := fn(); err != nil {
		if err == errNotConfigured {
			return DepStatus{Status: "disconnected"}
		}
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}
