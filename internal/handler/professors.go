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
	"github.com/ifportal/portal-go/internal/render"
	"github.com/ifportal/portal-go/internal/service"
	"github.com/ifportal/portal-go/internal/store"
)

// ProfessorHandler handles professor creation and the two listing variants.
type ProfessorHandler struct {
	queries          *store.Queries
	renderer         *render.Renderer
	sessionManager   *scs.SessionManager
	professorService *service.ProfessorService
}

// NewProfessorHandler creates a new ProfessorHandler.
func NewProfessorHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *ProfessorHandler {
	return &ProfessorHandler{
		queries:          store.New(db),
		renderer:         renderer,
		sessionManager:   sm,
		professorService: service.NewProfessorService(db),
	}
}

// NewForm renders the professor creation form.
func (h *ProfessorHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Title:    "Cadastrar Professor",
		UserName: middleware.CurrentUserName(h.sessionManager, r),
	}
	if err := h.renderer.Render(w, r, "professors/cadastro_professores", data); err != nil {
		logAndInternalError(w, "rendering professor form", "error", err)
	}
}

// Create handles the professor form submission with one optional photo
// under the "foto" field. An upload with an empty filename counts as no
// photo and the column stays NULL.
func (h *ProfessorHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashError(w, r, h.renderer, RouteProfessorsNew, "Dados do formulário inválidos.")
		return
	}

	name := r.FormValue("nome")
	role := r.FormValue("cargo")
	quote := r.FormValue("frase")

	if name == "" {
		flashError(w, r, h.renderer, RouteProfessorsNew, "Informe o nome do professor.")
		return
	}

	var photo []byte
	if r.MultipartForm != nil {
		if uploads := r.MultipartForm.File["foto"]; len(uploads) > 0 && datauri.HasFile(uploads[0]) {
			data, err := datauri.ReadFile(uploads[0])
			if err != nil {
				slog.Error("reading professor photo", "error", err, "filename", uploads[0].Filename)
				flashError(w, r, h.renderer, RouteProfessorsNew, "Não foi possível ler a foto enviada.")
				return
			}
			photo = data
		}
	}

	prof, err := h.queries.CreateProfessor(r.Context(), store.CreateProfessorParams{
		Name:      name,
		Role:      role,
		Quote:     quote,
		Photo:     photo,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("creating professor", "error", err)
		flashError(w, r, h.renderer, RouteProfessorsNew, "Não foi possível cadastrar o professor. Tente novamente.")
		return
	}

	slog.Info("professor created", "professor_id", prof.ID, "has_photo", len(photo) > 0)
	flashSuccess(w, r, h.renderer, redirectPanel, "Professor cadastrado com sucesso!")
}

// List renders the panel-facing professor listing.
func (h *ProfessorHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "professors/professores")
}

// PublicList renders the site-facing staff listing. Same query and
// formatting as List; only the template differs.
func (h *ProfessorHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "professors/pg_servidores")
}

func (h *ProfessorHandler) renderList(w http.ResponseWriter, r *http.Request, template string) {
	views, err := h.professorService.List(r.Context())
	if err != nil {
		logAndInternalError(w, "listing professors", "error", err)
		return
	}

	data := render.TemplateData{
		Title:    "Professores",
		Data:     views,
		UserName: middleware.CurrentUserName(h.sessionManager, r),
	}
	if err := h.renderer.Render(w, r, template, data); err != nil {
		logAndInternalError(w, "rendering professor listing", "error", err)
	}
}
