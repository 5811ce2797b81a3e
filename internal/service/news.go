// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service builds the display records the listing routes render.
// Both the public and the panel-facing variants of each listing compose
// the same service operation; only the guard and template differ.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/ifportal/portal-go/internal/datauri"
	"github.com/ifportal/portal-go/internal/store"
)

// htmlSanitizer strips dangerous markup from rendered news bodies while
// keeping the tags goldmark emits for user-generated content.
var htmlSanitizer = bluemonday.UGCPolicy()

// NewsView is a news post prepared for rendering: markdown body converted
// to sanitized HTML and images encoded as data: URIs. Images stays nil for
// posts without uploads. The URIs are typed template.URL because
// html/template refuses data: URLs in src attributes otherwise.
type NewsView struct {
	ID        int64
	Title     string
	Subtitle  string
	BodyHTML  template.HTML
	Images    []template.URL
	CreatedAt time.Time
}

// NewsService loads and formats news posts.
type NewsService struct {
	queries *store.Queries
}

// NewNewsService creates a NewsService.
func NewNewsService(db *sql.DB) *NewsService {
	return &NewsService{queries: store.New(db)}
}

// List returns all news posts newest-first as display records.
func (s *NewsService) List(ctx context.Context) ([]NewsView, error) {
	posts, err := s.queries.ListNewsPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing news posts: %w", err)
	}

	views := make([]NewsView, 0, len(posts))
	for _, p := range posts {
		v := NewsView{
			ID:        p.ID,
			Title:     p.Title,
			Subtitle:  p.Subtitle,
			CreatedAt: p.CreatedAt,
		}

		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(p.Body), &buf); err != nil {
			return nil, fmt.Errorf("rendering body of post %d: %w", p.ID, err)
		}
		v.BodyHTML = template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))

		for _, img := range p.Images {
			v.Images = append(v.Images, template.URL(datauri.URI(img)))
		}

		views = append(views, v)
	}
	return views, nil
}
