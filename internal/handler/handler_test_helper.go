package handler

import (
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/ifportal/portal-go/internal/middleware"
	"github.com/ifportal/portal-go/internal/render"
	"github.com/ifportal/portal-go/web"
)

// testDB creates an in-memory SQLite database with the required schema for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every pool connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	schema := `
		CREATE TABLE enrollments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			number TEXT NOT NULL UNIQUE
		);

		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			enrollment_id INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (enrollment_id) REFERENCES enrollments(id)
		);

		CREATE TABLE news (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			subtitle TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE news_images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			news_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			data BLOB NOT NULL,
			FOREIGN KEY (news_id) REFERENCES news(id) ON DELETE CASCADE,
			UNIQUE (news_id, position)
		);

		CREATE TABLE professors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT '',
			quote TEXT NOT NULL DEFAULT '',
			photo BLOB,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

// testSessionManager creates a session manager backed by the default
// in-memory store.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	return scs.New()
}

// testRenderer creates a renderer over the embedded templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("getting templates fs: %v", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("initializing renderer: %v", err)
	}
	return renderer
}

// newTestApp wires the full route table the way main does, minus CSRF
// protection, and serves it from an httptest server.
func newTestApp(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()

	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)

	authHandler := NewAuthHandler(db, renderer, sm)
	siteHandler := NewSiteHandler(renderer, sm)
	newsHandler := NewNewsHandler(db, renderer, sm)
	professorHandler := NewProfessorHandler(db, renderer, sm)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)

	r.Get(RouteRoot, siteHandler.Home)
	r.Get(RouteRegister, authHandler.RegisterForm)
	r.Post(RouteRegister, authHandler.Register)
	r.Get(RouteLogin, authHandler.LoginForm)
	r.Post(RouteLogin, authHandler.Login)
	r.Get(RouteLogout, authHandler.Logout)
	r.Get(RouteNewsPublic, newsHandler.PublicList)
	r.Get(RouteProfessorsPublic, professorHandler.PublicList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin(sm))
		r.Get(RoutePanel, siteHandler.Panel)
		r.Get(RouteNewsNew, newsHandler.NewForm)
		r.Post(RouteNewsNew, newsHandler.Create)
		r.Get(RouteProfessorsNew, professorHandler.NewForm)
		r.Post(RouteProfessorsNew, professorHandler.Create)
		r.Get(RouteNewsList, newsHandler.List)
		r.Get(RouteProfessorsList, professorHandler.List)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, db
}

// testClient returns an HTTP client with a cookie jar that does not
// follow redirects, so tests can assert on Location headers.
func testClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
