package users

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-users/middleware/tokenware"
)

// Server wires the controllers and the token middleware into a fiber app.
type Server struct {
	app    *fiber.App
	cfg    Config
	auther Authenticator
	users  UserService
	logger Logger
}

// NewServer builds the HTTP surface: /api/auth is public, /api/users sits
// behind the token gate.
func NewServer(cfg Config, auther Authenticator, users UserService) *Server {
	s := &Server{
		cfg:    cfg,
		auther: auther,
		users:  users,
		logger: defLogger{},
	}

	s.app = fiber.New(fiber.Config{
		AppName: "go-users",
	})

	s.registerRoutes()

	return s
}

func (s *Server) WithLogger(logger Logger) *Server {
	s.logger = logger
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the HTTP listener and blocks.
func (s *Server) Listen(addr string) error {
	s.logger.Info("server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	authCtrl := NewAuthController(s.auther)
	authCtrl.Logger = s.logger

	userCtrl := NewUserController(s.users)
	userCtrl.Logger = s.logger

	api := s.app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authCtrl.Login)
	auth.Post("/logout", authCtrl.Logout)

	protected := tokenware.New(tokenware.Config{
		ContextKey:  s.cfg.GetContextKey(),
		TokenLookup: s.cfg.GetTokenLookup(),
		Verifier: tokenware.VerifierFunc(func(ctx context.Context, token string) (any, error) {
			return s.auther.Verify(ctx, token)
		}),
		ContextEnricher: func(ctx context.Context, identity any) context.Context {
			if user, ok := identity.(*User); ok {
				return WithUser(ctx, user)
			}
			return ctx
		},
	})

	usersGroup := api.Group("/users", protected)
	usersGroup.Get("/", userCtrl.List)
	usersGroup.Get("/:id", userCtrl.Show)
	usersGroup.Post("/", userCtrl.Create)
	usersGroup.Put("/:id", userCtrl.Update)
	usersGroup.Delete("/:id", userCtrl.Delete)
}
