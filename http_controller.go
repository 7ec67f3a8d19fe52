package session

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// RegisterSessionRoutes wires the login/logout entry points onto the router.
func RegisterSessionRoutes[T any](app router.Router[T], opts ...SessionControllerOption) {
	controller := NewSessionController(opts...)

	app.
		Get(controller.Routes.Login, controller.LoginShow).
		SetName("sign-in.get")

	app.
		Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.
		Get(controller.Routes.Logout, controller.LogOut).
		SetName("sign-out.get")
}

type SessionControllerRoutes struct {
	Login  string
	Logout string
	Home   string
}

type SessionControllerViews struct {
	Login string
}

type SessionController struct {
	Debug        bool
	Logger       Logger
	Store        *Store
	Routes       *SessionControllerRoutes
	Views        *SessionControllerViews
	ErrorHandler router.ErrorHandler
}

type SessionControllerOption func(*SessionController) *SessionController

func WithControllerStore(store *Store) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		c.Store = store
		return c
	}
}

func WithControllerLogger(logger Logger) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		c.Logger = logger
		return c
	}
}

func WithControllerRoutes(routes *SessionControllerRoutes) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		c.Routes = routes
		return c
	}
}

// WithControllerConfig derives the login and home routes from cfg, falling
// back to the package defaults for anything unset.
func WithControllerConfig(cfg Config) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		c.Routes.Login = loginRoute(cfg)
		c.Routes.Home = homeRoute(cfg)
		return c
	}
}

func WithControllerDebug(debug bool) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		c.Debug = debug
		return c
	}
}

func NewSessionController(opts ...SessionControllerOption) *SessionController {
	c := &SessionController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &SessionControllerRoutes{
			Login:  DefaultLoginRoute,
			Logout: "/logout",
			Home:   DefaultHomeRoute,
		},
		Views: &SessionControllerViews{
			Login: "login",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing Store in session controller...")
	}

	return c
}

func (a *SessionController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email string `form:"email" json:"email"`
}

// GetEmail returns the identity string
func (r LoginRequest) GetEmail() string {
	return r.Email
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

func (a *SessionController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	if a.Debug {
		fmt.Println("======= SESSION LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("============================")
	}

	if _, err := a.Store.Login(ctx.Context(), payload.Email); err != nil {
		if IsInvalidCredentials(err) {
			errors["authentication"] = "We could not find an account for that email"
		} else {
			a.Logger.Error("login failed", "error", err)
			errors["authentication"] = "Something went wrong, please try again"
		}

		return flash.WithError(ctx, router.ViewContext{
			"error_message": errors["authentication"],
		}).Status(fiber.StatusUnauthorized).Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
		})
	}

	return ctx.Redirect(a.Routes.Home, router.StatusSeeOther)
}

func (a *SessionController) LogOut(ctx router.Context) error {
	if err := a.Store.Logout(ctx.Context()); err != nil {
		// signed out in memory either way; the stale slot only means the
		// next start restores a session the user asked to end
		a.Logger.Error("logout slot remove failed: %s", err)
	}
	return ctx.Redirect(a.Routes.Login, router.StatusTemporaryRedirect)
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
