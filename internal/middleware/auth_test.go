package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireLogin_RedirectsAnonymous(t *testing.T) {
	sm := scs.New()
	called := false

	h := sm.LoadAndSave(RequireLogin(sm)(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/painel", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}
	if called {
		t.Error("protected handler must not run for anonymous requests")
	}
}

func TestRequireLogin_PassesAuthenticated(t *testing.T) {
	sm := scs.New()
	called := false

	inner := RequireLogin(sm)(okHandler(&called))
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserName, "Maria Silva")
		inner.ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/painel", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Error("protected handler should run for authenticated requests")
	}
}

func TestCurrentUserName(t *testing.T) {
	sm := scs.New()
	var got string

	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserName, "Maria Silva")
		got = CurrentUserName(sm, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "Maria Silva" {
		t.Errorf("CurrentUserName = %q, want %q", got, "Maria Silva")
	}
}
