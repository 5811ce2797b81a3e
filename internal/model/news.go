// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// MaxNewsImages is the maximum number of images accepted per news post.
const MaxNewsImages = 4

// NewsPost represents a published news item. Posts are immutable after
// creation and listed newest-first.
type NewsPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Body      string    `json:"body"`
	Images    [][]byte  `json:"-"` // nil when the post has no images
	CreatedAt time.Time `json:"created_at"`
}
