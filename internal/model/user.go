// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain entities persisted by the portal:
// users, enrollments, news posts, and professors.
package model

import "time"

// User represents a registered portal user. Registration is gated by the
// enrollment whitelist; users are never mutated or deleted afterwards.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	EnrollmentID int64     `json:"enrollment_id"`
	CreatedAt    time.Time `json:"created_at"`
}
