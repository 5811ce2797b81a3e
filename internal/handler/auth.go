// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/ifportal/portal-go/internal/auth"
	"github.com/ifportal/portal-go/internal/middleware"
	"github.com/ifportal/portal-go/internal/render"
	"github.com/ifportal/portal-go/internal/store"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "auth/cadastro", render.TemplateData{Title: "Cadastro"}); err != nil {
		logAndInternalError(w, "rendering registration form", "error", err)
	}
}

// Register handles the registration form submission. A user row is created
// only when the supplied enrollment number is on the whitelist; the scalar
// enrollment id is what gets stored on the user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRegister) {
		return
	}

	name := r.FormValue("nome")
	email := r.FormValue("email")
	number := r.FormValue("matricula")
	password := r.FormValue("senha")

	if name == "" || email == "" || number == "" || password == "" {
		flashError(w, r, h.renderer, redirectRegister, "Preencha todos os campos.")
		return
	}

	enrollment, err := h.queries.GetEnrollmentByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, redirectRegister, "Erro: Matrícula não encontrada no sistema.")
			return
		}
		slog.Error("enrollment lookup failed", "error", err)
		flashError(w, r, h.renderer, redirectRegister, "Não foi possível concluir o cadastro. Tente novamente.")
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		flashError(w, r, h.renderer, redirectRegister, "Não foi possível concluir o cadastro. Tente novamente.")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		EnrollmentID: enrollment.ID,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// Covers the unique-email constraint as well; the user sees one
		// generic message either way.
		slog.Error("creating user", "error", err, "email", email)
		flashError(w, r, h.renderer, redirectRegister, "Não foi possível concluir o cadastro. Tente novamente.")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "enrollment_id", enrollment.ID)
	flashSuccess(w, r, h.renderer, redirectLogin, "Cadastro realizado com sucesso!")
}

// LoginForm renders the login page. Already-authenticated users are sent
// straight to the panel.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUserName(h.sessionManager, r) != "" {
		http.Redirect(w, r, redirectPanel, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{Title: "Login"}); err != nil {
		logAndInternalError(w, "rendering login form", "error", err)
	}
}

// Login handles the login form submission. Unknown email and wrong
// password produce the same message so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("senha")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "E-mail ou senha incorretos.")
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		flashError(w, r, h.renderer, redirectLogin, "E-mail ou senha incorretos.")
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, "E-mail ou senha incorretos.")
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		flashError(w, r, h.renderer, redirectLogin, "E-mail ou senha incorretos.")
		return
	}

	// Re-hash if the stored hash uses outdated parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserName, user.Name)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, redirectPanel, http.StatusSeeOther)
}

// Logout clears the session identity and redirects home. Calling it
// without a session is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	http.Redirect(w, r, redirectHome, http.StatusSeeOther)
}
