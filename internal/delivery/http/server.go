package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/places-api/internal/config"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
	log *zap.Logger
}

func NewServer(cfg *config.Config, log *zap.Logger, handler *PlaceHandler) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "places-api",
		DisableStartupMessage: cfg.Server.Env == "production",
	})

	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Content-Type,Accept,Accept-Language",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	v1 := app.Group("/v1")
	handler.Register(v1)

	return &Server{app: app, cfg: cfg, log: log}
}

func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.GetServerAddr())
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
