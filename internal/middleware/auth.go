// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication
// and request protection.
package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// SessionKeyUserName is the session key holding the authenticated user's
// display name. A non-empty value is the identity marker.
const SessionKeyUserName = "user_name"

// RequireLogin creates middleware that gates a handler behind the session
// identity marker. Requests without one are redirected to the login page
// before any handler code runs.
func RequireLogin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), SessionKeyUserName) == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUserName returns the display name stored in the session, or the
// empty string for anonymous requests.
func CurrentUserName(sm *scs.SessionManager, r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUserName)
}
