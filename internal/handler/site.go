// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/ifportal/portal-go/internal/middleware"
	"github.com/ifportal/portal-go/internal/render"
)

// SiteHandler handles the landing page and the authenticated panel.
type SiteHandler struct {
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(renderer *render.Renderer, sm *scs.SessionManager) *SiteHandler {
	return &SiteHandler{
		renderer:       renderer,
		sessionManager: sm,
	}
}

// Home renders the public landing page. Logged-in visitors are sent to
// the panel instead.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUserName(h.sessionManager, r) != "" {
		http.Redirect(w, r, redirectPanel, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "site/home", render.TemplateData{Title: "Página Inicial"}); err != nil {
		logAndInternalError(w, "rendering home page", "error", err)
	}
}

// Panel renders the dashboard with the session identity.
func (h *SiteHandler) Panel(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Title:    "Painel",
		UserName: middleware.CurrentUserName(h.sessionManager, r),
	}
	if err := h.renderer.Render(w, r, "site/painel", data); err != nil {
		logAndInternalError(w, "rendering panel", "error", err)
	}
}
