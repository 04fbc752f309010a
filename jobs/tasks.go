// Package jobs runs the gateway's background work on Asynq: pruning the
// audit trail, probing the upstream origin and expiring stale
// notification counters.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	jobmetrics "github.com/mazaadati/bidmaster-admin/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAuditPrune trims old rows from the audit trail.
	TaskAuditPrune = "audit:prune"
	// TaskUpstreamProbe checks whether the production origin is reachable.
	TaskUpstreamProbe = "upstream:probe"
	// TaskNotifyRefresh drops cached notification counters so the next
	// badge poll refetches them.
	TaskNotifyRefresh = "notify:refresh"
)

// AuditPruner deletes audit entries older than the retention window.
type AuditPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// OriginProber verifies the upstream origin answers.
type OriginProber interface {
	Probe(ctx context.Context) error
}

// AuditPrunePayload carries the retention window for a prune run.
type AuditPrunePayload struct {
	RetentionDays int `json:"retentionDays"`
}

// NewAuditPruneTask constructs an audit prune task.
func NewAuditPruneTask(retentionDays int) (*asynq.Task, error) {
	data, err := json.Marshal(AuditPrunePayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPrune, data), nil
}

// NewUpstreamProbeTask constructs an origin probe task.
func NewUpstreamProbeTask() *asynq.Task {
	return asynq.NewTask(TaskUpstreamProbe, nil)
}

// NewNotifyRefreshTask constructs a counter refresh task.
func NewNotifyRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskNotifyRefresh, nil)
}

// HandlerDeps collects what the task handlers need.
type HandlerDeps struct {
	Pruner  AuditPruner
	Prober  OriginProber
	Redis   *redis.Client
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// Handlers builds the Asynq handler set for the worker mux.
func Handlers(deps HandlerDeps) []TaskHandler {
	return []TaskHandler{
		{Type: TaskAuditPrune, Handler: deps.handleAuditPrune},
		{Type: TaskUpstreamProbe, Handler: deps.handleUpstreamProbe},
		{Type: TaskNotifyRefresh, Handler: deps.handleNotifyRefresh},
	}
}

func (d HandlerDeps) handleAuditPrune(ctx context.Context, t *asynq.Task) error {
	tracker := d.Metrics.Track(TaskAuditPrune)
	var payload AuditPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		_ = tracker.End(err)
		return asynq.SkipRetry
	}
	if payload.RetentionDays <= 0 {
		payload.RetentionDays = 90
	}
	removed, err := d.Pruner.Prune(ctx, time.Duration(payload.RetentionDays)*24*time.Hour)
	if err != nil {
		d.Logger.Error("audit prune failed", slog.Any("error", err))
		return tracker.End(err)
	}
	d.Logger.Info("audit prune finished", slog.Int64("removed", removed))
	return tracker.End(nil)
}

func (d HandlerDeps) handleUpstreamProbe(ctx context.Context, t *asynq.Task) error {
	tracker := d.Metrics.Track(TaskUpstreamProbe)
	if err := d.Prober.Probe(ctx); err != nil {
		d.Logger.Warn("upstream probe failed", slog.Any("error", err))
		return tracker.End(err)
	}
	return tracker.End(nil)
}

// handleNotifyRefresh drops every cached unread counter. Sessions pick up
// fresh numbers on their next poll.
func (d HandlerDeps) handleNotifyRefresh(ctx context.Context, t *asynq.Task) error {
	tracker := d.Metrics.Track(TaskNotifyRefresh)
	if d.Redis == nil {
		return tracker.End(nil)
	}
	var cursor uint64
	var dropped int
	for {
		keys, next, err := d.Redis.Scan(ctx, cursor, "notifications:unread:*", 100).Result()
		if err != nil {
			d.Logger.Warn("notify refresh scan failed", slog.Any("error", err))
			return tracker.End(err)
		}
		if len(keys) > 0 {
			if err := d.Redis.Del(ctx, keys...).Err(); err != nil {
				return tracker.End(err)
			}
			dropped += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	d.Logger.Debug("notify refresh finished", slog.Int("dropped", dropped))
	return tracker.End(nil)
}
