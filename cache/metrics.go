package cache

import (
	"bufio"
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BackendMetrics backend-wide cache effectiveness snapshot.
// The counters come from the backend's cumulative keyspace statistics and
// span ALL keys ever accessed through that backend, not just the keys this
// service manages. Treat the values as directional trend indicators, not
// as exact attribution.
type BackendMetrics struct {
	KeyspaceHits       int64   `json:"keyspace_hits"`
	KeyspaceMisses     int64   `json:"keyspace_misses"`
	TotalRequests      int64   `json:"total_requests"`
	HitRatio           float64 `json:"hit_ratio"`
	HitRatioPercentage float64 `json:"hit_ratio_percentage"`
	Error              string  `json:"error,omitempty"`
}

// MetricsReader reads keyspace hit/miss counters from the Redis
// administrative interface (INFO stats)
type MetricsReader struct {
	client *redis.Client
	log    logger.Logger
}

// NewMetricsReader creates a metrics reader
func NewMetricsReader(client *redis.Client, log logger.Logger) *MetricsReader {
	return &MetricsReader{
		client: client,
		log:    log,
	}
}

// Snapshot retrieves the current backend metrics.
// Never returns an error: any failure reaching the backend yields a
// degraded all-zero snapshot with the Error field set, logged at error
// severity.
func (r *MetricsReader) Snapshot(ctx context.Context) BackendMetrics {
	info, err := r.client.Info(ctx, "stats").Result()
	if err != nil {
		r.log.ErrorCtx(ctx, "failed to retrieve cache backend metrics", zap.Error(err))
		return BackendMetrics{Error: err.Error()}
	}

	hits := parseInfoCounter(info, "keyspace_hits")
	misses := parseInfoCounter(info, "keyspace_misses")
	metrics := computeBackendMetrics(hits, misses)

	r.log.InfoCtx(ctx, "cache backend metrics",
		zap.Int64("keyspace_hits", metrics.KeyspaceHits),
		zap.Int64("keyspace_misses", metrics.KeyspaceMisses),
		zap.Int64("total_requests", metrics.TotalRequests),
		zap.Float64("hit_ratio", metrics.HitRatio))

	return metrics
}

// computeBackendMetrics derives ratios from raw counters
// hit ratio is 0.0 when there were no requests (no division by zero)
func computeBackendMetrics(hits, misses int64) BackendMetrics {
	total := hits + misses

	var ratio float64
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}

	return BackendMetrics{
		KeyspaceHits:       hits,
		KeyspaceMisses:     misses,
		TotalRequests:      total,
		HitRatio:           ratio,
		HitRatioPercentage: math.Round(ratio*100*100) / 100,
	}
}

// parseInfoCounter extracts an integer counter from an INFO reply.
// INFO lines have the form "field:value"; absent fields count as 0.
func parseInfoCounter(info, field string) int64 {
	scanner := bufio.NewScanner(strings.NewReader(info))
	prefix := field + ":"

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value, err := strconv.ParseInt(strings.TrimPrefix(line, prefix), 10, 64)
		if err != nil {
			return 0
		}
		return value
	}
	return 0
}
