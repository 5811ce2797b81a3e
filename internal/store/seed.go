// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// SeedEnrollments loads the enrollment whitelist from a newline-delimited
// file. Blank lines and lines starting with '#' are skipped; numbers that
// already exist are left untouched.
func SeedEnrollments(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening enrollments file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var added, total int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		number := strings.TrimSpace(scanner.Text())
		if number == "" || strings.HasPrefix(number, "#") {
			continue
		}
		total++
		res, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO enrollments (number) VALUES (?)`, number)
		if err != nil {
			return fmt.Errorf("seeding enrollment %q: %w", number, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading enrollments file: %w", err)
	}

	slog.Info("enrollment whitelist seeded", "file", path, "listed", total, "added", added)
	return nil
}
