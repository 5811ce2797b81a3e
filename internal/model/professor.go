// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Professor represents a staff profile. Profiles are immutable after
// creation and listed alphabetically by name.
type Professor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Quote     string    `json:"quote"`
	Photo     []byte    `json:"-"` // nil when no photo was uploaded
	CreatedAt time.Time `json:"created_at"`
}

// HasPhoto returns true if the professor has an uploaded photo.
func (p *Professor) HasPhoto() bool {
	return len(p.Photo) > 0
}
