package session

import (
	"net/http"

	"github.com/goliatone/go-router"
)

// Decision is the guard's three-way outcome for a protected view.
type Decision string

const (
	// DecisionPending suspends the view while the initial restore runs
	DecisionPending Decision = "pending"
	// DecisionRedirect sends the request to the login entry point
	DecisionRedirect Decision = "redirect"
	// DecisionAllow renders the protected content
	DecisionAllow Decision = "allow"
)

// Evaluate maps session state to the guard outcome. Loading suspends rather
// than decides; only a settled state produces a redirect or a render.
func Evaluate(s State) Decision {
	switch {
	case s.IsLoading():
		return DecisionPending
	case !s.IsAuthenticated():
		return DecisionRedirect
	default:
		return DecisionAllow
	}
}

// RouteGuard gates protected routes on the session store's state. Each
// request re-reads the store, so the guard follows every transition without
// polling.
type RouteGuard struct {
	store      *Store
	loginRoute string

	Logger Logger
	// LoadingView, when set, is rendered while the restore is pending;
	// otherwise LoadingHandler answers with a plain waiting indicator.
	LoadingView    string
	LoadingHandler func(c router.Context) error
}

func NewRouteGuard(store *Store, cfg Config) *RouteGuard {
	if store == nil {
		panic("Missing Store in route guard...")
	}

	g := &RouteGuard{
		store:      store,
		loginRoute: loginRoute(cfg),
		Logger:     defLogger{},
	}
	g.LoadingHandler = g.defaultLoadingHandler

	return g
}

func (g *RouteGuard) WithLogger(logger Logger) *RouteGuard {
	if logger != nil {
		g.Logger = logger
	}
	return g
}

// Protected returns the middleware enforcing the guard decision. The
// attempted destination is discarded on redirect; after signing in users
// land on the home route, not where they were headed.
func (g *RouteGuard) Protected() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			switch Evaluate(g.store.Current()) {
			case DecisionPending:
				return g.LoadingHandler(c)
			case DecisionRedirect:
				g.Logger.Info(
					"unauthenticated request, redirecting to login",
					"path", c.OriginalURL(),
				)

				statusCode := http.StatusSeeOther
				if c.Method() == string(router.GET) {
					statusCode = http.StatusFound
				}
				return c.Redirect(g.loginRoute, statusCode)
			}

			return next(c)
		}
	}
}

func (g *RouteGuard) defaultLoadingHandler(c router.Context) error {
	if g.LoadingView != "" {
		return c.Render(g.LoadingView, router.ViewContext{})
	}
	return c.Status(http.StatusOK).SendString("Loading...")
}
