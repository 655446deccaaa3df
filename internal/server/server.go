// FILE: internal/server/server.go
package server

import (
	"log"

	"stack-navigator-be/internal/bootstrap"
	"stack-navigator-be/internal/config"
	"stack-navigator-be/internal/pkg/serverutils"
	ws "stack-navigator-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 2 * 1024 * 1024, // requests are JSON, downloads go the other way
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)
	registerWebsocket(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)
	c.PlanController.RegisterRoutes(api)

	c.AdvisorController.RegisterRoutes(api)
	c.StackController.RegisterRoutes(api)
	c.GeneratorController.RegisterRoutes(api)

	c.PaymentController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)
}

// registerWebsocket mounts the push socket. Browsers cannot set an
// Authorization header on a websocket handshake, so the token rides in
// the query string instead.
func registerWebsocket(app *fiber.App, c *bootstrap.Container) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}

		userId, ok := parseSocketToken(ctx.Query("token"))
		if !ok {
			return fiber.ErrUnauthorized
		}
		ctx.Locals("ws_user_id", userId)
		return ctx.Next()
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userId := conn.Locals("ws_user_id").(uuid.UUID)
		ws.ServeWs(c.WebSocketHub, conn, userId)
	}))
}

func parseSocketToken(tokenStr string) (uuid.UUID, bool) {
	if tokenStr == "" {
		return uuid.Nil, false
	}

	claims, ok := serverutils.ParseToken(tokenStr)
	if !ok {
		return uuid.Nil, false
	}
	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userId, true
}
