// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package launcher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"

	"modernc.org/sqlite"
)

// Status is the state of the voting server's database file
type Status int

const (
	StatusMissing Status = iota
	StatusCorrupted
	StatusHealthy
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusCorrupted:
		return "corrupted"
	case StatusHealthy:
		return "healthy"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// CheckDatabase reports whether path holds a readable SQLite database.
// Any SQLite error while reading the schema marks the file corrupted; other
// failures are returned.
func CheckDatabase(ctx context.Context, path string) (Status, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return StatusMissing, nil
	}
	if err != nil {
		return StatusMissing, fmt.Errorf("failed to stat database: %w", err)
	}
	if info.IsDir() {
		return StatusMissing, fmt.Errorf("database path %s is a directory", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return StatusMissing, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var version int64
	err = db.QueryRowContext(ctx, "PRAGMA schema_version").Scan(&version)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) {
			slog.Debug("database check failed", "path", path, "code", sqliteErr.Code(), "error", err)
			return StatusCorrupted, nil
		}
		return StatusMissing, fmt.Errorf("failed to read schema version: %w", err)
	}
	return StatusHealthy, nil
}

// Prepare deletes a corrupted database so the voting server starts with a
// fresh one. Healthy and missing files are left alone.
func Prepare(ctx context.Context, path string) (Status, error) {
	status, err := CheckDatabase(ctx, path)
	if err != nil {
		return status, err
	}

	switch status {
	case StatusCorrupted:
		slog.Warn("database is corrupted, deleting", "path", path)
		if err := os.Remove(path); err != nil {
			return status, fmt.Errorf("failed to delete corrupted database: %w", err)
		}
	case StatusHealthy:
		slog.Info("database exists, keeping it", "path", path)
	case StatusMissing:
		slog.Info("no database yet", "path", path)
	}
	return status, nil
}

// Run prepares the database then runs argv in the foreground, wired to the
// current process's standard streams
func Run(ctx context.Context, path string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("no command to launch")
	}
	if _, err := Prepare(ctx, path); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("starting voting server", "command", argv[0])
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("voting server exited: %w", err)
	}
	return nil
}
