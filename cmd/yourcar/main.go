package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"yourcar/internal/config"
	"yourcar/internal/http/handlers"
	applog "yourcar/internal/log"
	"yourcar/internal/repos"
	"yourcar/internal/services"
)

func openStore(cfg config.Config) (services.CarStore, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := repos.OpenGorm(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return repos.NewGormCarRepo(db), nil
	case "sqlite":
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return repos.NewCarRepo(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: %s)", cfg.DBDriver, strings.Join(config.Drivers, ", "))
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		defer applog.SetFile(cfg.LogFile).Close()
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repos.SeedCars(ctx, store)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		if n > 0 {
			applog.InfoContext(context.Background(), "seed.cars", map[string]any{"count": n})
		}
	}

	deps, err := handlers.NewDeps(store, cfg)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))

	app.Static("/static", cfg.StaticDir)

	// ---------- GraphQL ----------
	gqlLimiter := handlers.GraphQLLimiter(cfg.GraphQLRateLimit)
	guard := handlers.MutationGuard(cfg.AdminTokenHash)
	app.Post("/graphql", gqlLimiter, guard, deps.GraphQLHandler.Serve)
	app.Get("/graphql", gqlLimiter, guard, deps.GraphQLHandler.Serve)

	// ---------- Top cars ----------
	app.Get("/", deps.TopCarsHandler.Home)
	app.Get("/api/v1/top-cars", deps.TopCarsHandler.JSON)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(handlers.NotFound)

	log.Fatal(app.Listen(":" + cfg.Port))
}
