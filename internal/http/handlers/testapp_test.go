package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"rewear/internal/config"
	"rewear/internal/http/handlers"
	"rewear/internal/repos"
	"rewear/internal/services"
	"rewear/internal/token"

	"github.com/gofiber/fiber/v2"
	_ "modernc.org/sqlite"
)

var testCfg = config.Config{
	JWTSecret:             "test-secret-0123456789abcdef",
	TokenTTLMinutes:       60,
	CartHoldMinutes:       30,
	ShippingFee:           4.90,
	FreeShippingThreshold: 75,
}

// newTestApp wires the full route table against a fresh seeded in-memory db.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}

	tokens, err := token.NewManager(testCfg.JWTSecret, time.Duration(testCfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db), Tokens: tokens}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db, testCfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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

	requireUser := handlers.RequireUser(authSvc)
	adminOnly := handlers.AdminOnly()

	app.Post("/auth/login", authH.Login)
	app.Post("/auth/register", authH.Register)
	app.Get("/auth/me", requireUser, authH.Me)

	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/featured", deps.ProductHandler.Featured)
	app.Get("/products/:id", deps.ProductHandler.Detail)
	app.Get("/categories", deps.ProductHandler.Categories)
	app.Post("/products", requireUser, adminOnly, deps.ProductHandler.Create)
	app.Put("/products/:id", requireUser, adminOnly, deps.ProductHandler.Update)
	app.Delete("/products/:id", requireUser, adminOnly, deps.ProductHandler.Delete)

	cart := app.Group("/cart", requireUser)
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Put("/items/:productId", deps.CartHandler.UpdateItem)
	cart.Delete("/items/:productId", deps.CartHandler.Remove)
	cart.Delete("/", deps.CartHandler.Clear)
	cart.Post("/extend-hold", deps.CartHandler.ExtendHold)
	cart.Get("/hold-status", deps.CartHandler.HoldStatus)

	app.Get("/orders/stats/summary", requireUser, adminOnly, deps.OrderHandler.Stats)
	app.Post("/orders", requireUser, deps.OrderHandler.Place)
	app.Get("/orders", requireUser, deps.OrderHandler.History)
	app.Get("/orders/:id", requireUser, deps.OrderHandler.View)
	app.Put("/orders/:id/status", requireUser, adminOnly, deps.OrderHandler.UpdateStatus)

	app.Get("/blog/stats/summary", requireUser, adminOnly, deps.BlogHandler.Stats)
	app.Get("/blog", deps.BlogHandler.List)
	app.Get("/blog/slug/:slug", deps.BlogHandler.BySlug)
	app.Get("/blog/:id", deps.BlogHandler.Detail)
	app.Post("/blog/:id/like", requireUser, deps.BlogHandler.Like)

	app.Get("/notifications/stats/summary", requireUser, adminOnly, deps.NotificationHandler.Stats)
	app.Get("/notifications", requireUser, deps.NotificationHandler.List)
	app.Post("/notifications/:id/read", requireUser, deps.NotificationHandler.MarkRead)

	app.Get("/users/stats/summary", requireUser, adminOnly, deps.AdminHandler.UserStats)
	app.Get("/admin/orders", requireUser, adminOnly, deps.AdminHandler.RecentOrders)

	return app
}

// login returns a bearer token for one of the seeded accounts.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	form := url.Values{"email": {email}, "password": {"Passw0rd!"}}
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login %s: status %d body %s", email, resp.StatusCode, body)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.AccessToken == "" {
		t.Fatal("login returned empty token")
	}
	return out.AccessToken
}

func doJSON(t *testing.T, app *fiber.App, method, path, tok, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var m map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &m)
	}
	return resp, m
}
