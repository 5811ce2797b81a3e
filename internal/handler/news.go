// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/ifportal/portal-go/internal/datauri"
	"github.com/ifportal/portal-go/internal/middleware"
	"github.com/ifportal/portal-go/internal/model"
	"github.com/ifportal/portal-go/internal/render"
	"github.com/ifportal/portal-go/internal/service"
	"github.com/ifportal/portal-go/internal/store"
)

// NewsHandler handles news creation and the two listing variants.
type NewsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	newsService    *service.NewsService
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *NewsHandler {
	return &NewsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		newsService:    service.NewNewsService(db),
	}
}

// NewForm renders the news creation form.
func (h *NewsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Title:    "Cadastrar Notícia",
		UserName: middleware.CurrentUserName(h.sessionManager, r),
	}
	if err := h.renderer.Render(w, r, "news/cadastro_noticias", data); err != nil {
		logAndInternalError(w, "rendering news form", "error", err)
	}
}

// Create handles the news form submission. At most the first four uploads
// under the "imagens" field are stored; uploads with an empty filename are
// skipped. A post without qualifying uploads stores no image rows at all.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, RouteNewsNew, "Dados do formulário inválidos.")
		return
	}

	title := r.FormValue("titulo")
	subtitle := r.FormValue("subtitulo")
	body := r.FormValue("corpo")

	if title == "" {
		flashError(w, r, h.renderer, RouteNewsNew, "Informe o título da notícia.")
		return
	}

	var images [][]byte
	if r.MultipartForm != nil {
		uploads := r.MultipartForm.File["imagens"]
		if len(uploads) > model.MaxNewsImages {
			uploads = uploads[:model.MaxNewsImages]
		}
		for _, fh := range uploads {
			if !datauri.HasFile(fh) {
				continue
			}
			data, err := datauri.ReadFile(fh)
			if err != nil {
				slog.Error("reading news image", "error", err, "filename", fh.Filename)
				flashError(w, r, h.renderer, RouteNewsNew, "Não foi possível ler uma das imagens enviadas.")
				return
			}
			images = append(images, data)
		}
	}

	post, err := h.queries.CreateNewsPost(r.Context(), store.CreateNewsPostParams{
		Title:     title,
		Subtitle:  subtitle,
		Body:      body,
		Images:    images,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("creating news post", "error", err)
		flashError(w, r, h.renderer, RouteNewsNew, "Não foi possível cadastrar a notícia. Tente novamente.")
		return
	}

	slog.Info("news post created", "news_id", post.ID, "images", len(images))
	flashSuccess(w, r, h.renderer, redirectPanel, "Notícia cadastrada com sucesso!")
}

// List renders the panel-facing news listing.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "news/noticias")
}

// PublicList renders the site-facing news listing. Same query and
// formatting as List; only the template differs.
func (h *NewsHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "news/pg_noticias")
}

func (h *NewsHandler) renderList(w http.ResponseWriter, r *http.Request, template string) {
	views, err := h.newsService.List(r.Context())
	if err != nil {
		logAndInternalError(w, "listing news", "error", err)
		return
	}

	data := render.TemplateData{
		Title:    "Notícias",
		Data:     views,
		UserName: middleware.CurrentUserName(h.sessionManager, r),
	}
	if err := h.renderer.Render(w, r, template, data); err != nil {
		logAndInternalError(w, "rendering news listing", "error", err)
	}
}
