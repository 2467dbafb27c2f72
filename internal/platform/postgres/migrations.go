package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// slogGooseLogger adapts goose's logger interface to slog so migration
// output lands in the same structured stream as everything else.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

// RunMigrations applies all pending schema migrations embedded in the
// binary. It is safe to call on every startup; goose tracks applied
// versions in its own table.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
