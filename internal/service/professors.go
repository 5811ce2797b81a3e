// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ifportal/portal-go/internal/datauri"
	"github.com/ifportal/portal-go/internal/store"
)

// ProfessorView is a professor profile prepared for rendering. PhotoURI is
// empty when no photo was uploaded, never an encoded empty blob. It is
// typed template.URL so the data: scheme survives attribute escaping.
type ProfessorView struct {
	ID       int64
	Name     string
	Role     string
	Quote    string
	PhotoURI template.URL
}

// ProfessorService loads and formats professor profiles.
type ProfessorService struct {
	queries  *store.Queries
	collator *collate.Collator
}

// NewProfessorService creates a ProfessorService. Names are ordered with a
// Portuguese collator so accented names sort where readers expect them,
// not where their bytes fall.
func NewProfessorService(db *sql.DB) *ProfessorService {
	return &ProfessorService{
		queries:  store.New(db),
		collator: collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
	}
}

// List returns all professors in collated alphabetical order.
func (s *ProfessorService) List(ctx context.Context) ([]ProfessorView, error) {
	profs, err := s.queries.ListProfessors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing professors: %w", err)
	}

	views := make([]ProfessorView, 0, len(profs))
	for _, p := range profs {
		v := ProfessorView{
			ID:    p.ID,
			Name:  p.Name,
			Role:  p.Role,
			Quote: p.Quote,
		}
		if p.HasPhoto() {
			v.PhotoURI = template.URL(datauri.URI(p.Photo))
		}
		views = append(views, v)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return s.collator.CompareString(views[i].Name, views[j].Name) < 0
	})

	return views, nil
}
