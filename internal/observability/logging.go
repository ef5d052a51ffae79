// Package observability provides repository logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var (
	repoLoggingEnabled atomic.Bool
	repoBaseLogger     atomic.Pointer[slog.Logger]
)

// ConfigureRepoLogging sets the logger used by RepoLogger and toggles write logging.
// A nil logger keeps slog.Default().
func ConfigureRepoLogging(logger *slog.Logger, enabled bool) {
	if logger != nil {
		repoBaseLogger.Store(logger)
	}
	repoLoggingEnabled.Store(enabled)
}

func repoLogger() *slog.Logger {
	if l := repoBaseLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName}
}

// LogWrite logs a successful create, update or delete.
func (l *RepoLogger) LogWrite(ctx context.Context, operation string, id uint, attrs ...slog.Attr) {
	if !repoLoggingEnabled.Load() {
		return
	}
	args := []any{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.Uint64("id", uint64(id)),
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	repoLogger().InfoContext(ctx, "repository "+operation, args...)
}

// LogError logs a failed repository operation. Errors are logged even when write logging is off.
func (l *RepoLogger) LogError(ctx context.Context, operation string, err error) {
	repoLogger().ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
