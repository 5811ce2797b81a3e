package handler

// Route patterns for chi router registration.
const (
	// RouteRoot is the public landing page.
	RouteRoot = "/"
	// RouteRegister is the user registration form.
	RouteRegister = "/cadastro"
	// RouteLogin is the login form.
	RouteLogin = "/login"
	// RouteLogout clears the session.
	RouteLogout = "/logout"
	// RoutePanel is the authenticated dashboard.
	RoutePanel = "/painel"
	// RouteNewsNew is the news creation form.
	RouteNewsNew = "/cadastro_noticias"
	// RouteProfessorsNew is the professor creation form.
	RouteProfessorsNew = "/cadastro_professores"
	// RouteNewsList is the panel-facing news listing.
	RouteNewsList = "/noticias"
	// RouteNewsPublic is the site-facing news listing.
	RouteNewsPublic = "/pgNoticias"
	// RouteProfessorsList is the panel-facing professor listing.
	RouteProfessorsList = "/professores"
	// RouteProfessorsPublic is the site-facing professor listing.
	RouteProfessorsPublic = "/pgServidores"
)

const (
	redirectHome     = RouteRoot
	redirectLogin    = RouteLogin
	redirectPanel    = RoutePanel
	redirectRegister = RouteRegister
)

// maxUploadMemory bounds the in-memory portion of multipart form parsing.
const maxUploadMemory = 32 << 20 // 32 MB
