package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// Recorder is what resource handlers depend on; keeping it an interface lets
// tests drop the trail entirely.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Service writes and lists audit entries.
type Service struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, logger *slog.Logger) *Service {
	return &Service{pool: pool, logger: logger}
}

// Record persists the entry. Audit failures are logged, never propagated:
// the admin action itself already succeeded upstream.
func (s *Service) Record(ctx context.Context, entry Entry) {
	if s == nil || s.pool == nil {
		return
	}
	if err := s.record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Error("record audit entry", slog.Any("error", err))
	}
}

func (s *Service) record(ctx context.Context, entry Entry) error {
	if entry.Action == "" || entry.Module == "" {
		return errors.New("audit entry requires action/module")
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	metaJSON, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO admin_audit_log (actor_id, role, action, module, target_id, meta, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ActorID, entry.Role, entry.Action, entry.Module, entry.TargetID, metaJSON, entry.At)
	return err
}

// List returns entries newest first.
func (s *Service) List(ctx context.Context, query shared.ListQuery) ([]Entry, shared.Pagination, error) {
	offset := (query.Page - 1) * query.PerPage

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_audit_log`).Scan(&total); err != nil {
		return nil, shared.Pagination{}, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, actor_id, role, action, module, target_id, meta, occurred_at
		 FROM admin_audit_log ORDER BY occurred_at DESC, id DESC LIMIT $1 OFFSET $2`,
		query.PerPage, offset)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var metaJSON []byte
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Role, &entry.Action,
			&entry.Module, &entry.TargetID, &metaJSON, &entry.At); err != nil {
			return nil, shared.Pagination{}, err
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &entry.Meta)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Pagination{}, err
	}
	return entries, shared.NewPagination(query.Page, query.PerPage, total), nil
}

// Prune removes entries older than the retention window. Returns the number
// of deleted rows.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM admin_audit_log WHERE occurred_at < NOW() - $1::interval`,
		retention.String())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// NopRecorder discards entries; used in tests.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Entry) {}
