package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"rewear/internal/config"
	"rewear/internal/http/handlers"
	applog "rewear/internal/log"
	"rewear/internal/metrics"
	"rewear/internal/repos"
	"rewear/internal/services"
	"rewear/internal/token"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	tokens, err := token.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatal(err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Tokens: tokens}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return a friendly JSON body; never leak internals
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
				"code":  "internal",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(metrics.Middleware())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/metrics" || p == "/healthz"
		},
	}))

	deps := handlers.NewDeps(db, cfg)

	// Background hold sweeper; inline sweeps still guard every cart read
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	deps.CartService.StartSweeper(ctx, 30*time.Second)

	requireUser := handlers.RequireUser(authSvc)
	adminOnly := handlers.AdminOnly()

	// ---------- Auth ----------
	app.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many attempts. Please try again later.",
				"code":  "rate_limited",
			})
		},
	}), authH.Login)
	app.Post("/auth/register", authH.Register)
	app.Get("/auth/me", requireUser, authH.Me)

	// ---------- Catalog ----------
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/featured", deps.ProductHandler.Featured)
	app.Get("/products/:id", deps.ProductHandler.Detail)
	app.Get("/categories", deps.ProductHandler.Categories)
	app.Post("/products", requireUser, adminOnly, deps.ProductHandler.Create)
	app.Put("/products/:id", requireUser, adminOnly, deps.ProductHandler.Update)
	app.Delete("/products/:id", requireUser, adminOnly, deps.ProductHandler.Delete)

	// ---------- Cart (hold/reservation) ----------
	cart := app.Group("/cart", requireUser)
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Put("/items/:productId", deps.CartHandler.UpdateItem)
	cart.Delete("/items/:productId", deps.CartHandler.Remove)
	cart.Delete("/", deps.CartHandler.Clear)
	cart.Post("/extend-hold", deps.CartHandler.ExtendHold)
	cart.Get("/hold-status", deps.CartHandler.HoldStatus)

	// ---------- Orders ----------
	app.Get("/orders/stats/summary", requireUser, adminOnly, deps.OrderHandler.Stats)
	app.Post("/orders", requireUser, deps.OrderHandler.Place)
	app.Get("/orders", requireUser, deps.OrderHandler.History)
	app.Get("/orders/:id", requireUser, deps.OrderHandler.View)
	app.Put("/orders/:id/status", requireUser, adminOnly, deps.OrderHandler.UpdateStatus)

	// ---------- Blog / lookbook ----------
	app.Get("/blog/stats/summary", requireUser, adminOnly, deps.BlogHandler.Stats)
	app.Get("/blog", deps.BlogHandler.List)
	app.Get("/blog/slug/:slug", deps.BlogHandler.BySlug)
	app.Get("/blog/:id", deps.BlogHandler.Detail)
	app.Post("/blog/:id/like", requireUser, deps.BlogHandler.Like)

	// ---------- Notifications ----------
	app.Get("/notifications/stats/summary", requireUser, adminOnly, deps.NotificationHandler.Stats)
	app.Get("/notifications", requireUser, deps.NotificationHandler.List)
	app.Post("/notifications/:id/read", requireUser, deps.NotificationHandler.MarkRead)

	// ---------- Admin extras ----------
	app.Get("/users/stats/summary", requireUser, adminOnly, deps.AdminHandler.UserStats)
	app.Get("/admin/orders", requireUser, adminOnly, deps.AdminHandler.RecentOrders)

	// Health & metrics
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return jsonErr404(c)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[shutdown] draining connections")
	_ = app.ShutdownWithTimeout(10 * time.Second)
}

func jsonErr404(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found", "code": "not_found"})
}
