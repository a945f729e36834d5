package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ricardomonteiro/vitrine-backend/internal/config"
	"github.com/ricardomonteiro/vitrine-backend/internal/handlers"
	"github.com/ricardomonteiro/vitrine-backend/internal/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Access   *handlers.AccessHandler
	Store    *handlers.StoreHandler
	Product  *handlers.ProductHandler
	Address  *handlers.AddressHandler
	Sale     *handlers.SaleHandler
	Checkout *handlers.CheckoutHandler
	Health   *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h *Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth routes are public with a stricter rate limit: 10 req/min per IP
	auth := api.Group("")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/sign-in", h.Auth.SignIn)
	auth.Post("/password-reset/request", h.Auth.RequestPasswordReset)
	auth.Post("/password-reset/reset", h.Auth.ResetPassword)

	jwt := middleware.JWTProtected(cfg)
	anyRole := middleware.RequireRoles("admin", "seller", "buyer")
	adminOnly := middleware.RequireRoles("admin")
	sellers := middleware.RequireRoles("admin", "seller")

	// Users
	api.Get("/users", jwt, adminOnly, h.User.List)
	api.Get("/users/me", jwt, anyRole, h.User.Me)
	api.Get("/users/:id", jwt, adminOnly, h.User.Get)
	api.Delete("/users/:id", jwt, adminOnly, h.User.Delete)

	// Accesses
	api.Post("/accesses", jwt, adminOnly, h.Access.Create)
	api.Get("/accesses", jwt, sellers, h.Access.List)

	// Stores
	api.Post("/stores", jwt, sellers, h.Store.Create)
	api.Get("/stores", jwt, anyRole, h.Store.List)
	api.Get("/stores/:storeId", jwt, anyRole, h.Store.Get)
	api.Put("/stores/:storeId", jwt, sellers, h.Store.Update)
	api.Delete("/stores/:storeId", jwt, sellers, h.Store.Delete)

	// Product listing and detail are public, mutation is seller-owned
	api.Post("/stores/:storeId/products", jwt, sellers, h.Product.Create)
	api.Get("/products", h.Product.List)
	api.Get("/products/:productId", h.Product.Get)
	api.Put("/products/:productId", jwt, sellers, h.Product.Update)
	api.Delete("/products/:productId", jwt, sellers, h.Product.Delete)

	// Addresses
	api.Post("/address", jwt, anyRole, h.Address.Create)
	api.Get("/address/:userId", jwt, anyRole, h.Address.GetByUser)
	api.Put("/address", jwt, anyRole, h.Address.Update)
	api.Delete("/address", jwt, anyRole, h.Address.Delete)

	// Sales, synchronous path
	api.Post("/create-sale", jwt, anyRole, h.Sale.Create)
	api.Get("/sales", jwt, adminOnly, h.Sale.ListAll)
	api.Get("/sales/buyer", jwt, middleware.RequireRoles("admin", "buyer"), h.Sale.ListByBuyer)
	api.Get("/sales/seller", jwt, sellers, h.Sale.ListBySeller)

	// Checkout, asynchronous path. The webhook has no JWT, it is
	// authenticated by its signature header
	api.Post("/create-checkout-session", jwt, anyRole, h.Checkout.CreateSession)
	api.Post("/webhook", h.Checkout.HandleWebhook)
	api.Get("/order-details", jwt, anyRole, h.Checkout.OrderDetails)
	api.Get("/admin/orders", jwt, adminOnly, h.Checkout.AdminOrders)
}
