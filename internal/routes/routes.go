package routes

import (
	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/handlers/payment"
	"tienda_back_end/internal/handlers/product"
	"tienda_back_end/internal/handlers/user"
	"tienda_back_end/internal/middleware"
	"tienda_back_end/internal/services"
)

// Deps junta todo lo que las rutas necesitan; se arma una sola vez en main.
type Deps struct {
	DB      *database.Connections
	Carts   cart.Store
	Feed    cart.Feed
	Gateway services.Gateway
	Policy  cart.Policy
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	rl := middleware.NewRateLimiter(deps.DB.Redis)

	products := product.NewHandler(deps.DB.Scylla, deps.DB.Redis, deps.DB.Elastic, deps.DB.MinIO)
	auth := user.NewAuthHandler(deps.DB.Scylla)
	carts := user.NewCartHandler(deps.Carts, deps.Policy, services.NewCatalogFinder(deps.DB.Scylla))
	cartSync := user.NewCartSyncHandler(deps.Carts, deps.Feed)
	wishlist := user.NewWishlistHandler(deps.DB.Scylla, deps.DB.Redis)
	checkout := payment.NewCheckoutHandler(deps.Gateway)
	webhook := payment.NewWebhookHandler(deps.Gateway, services.NewScyllaOrders(deps.DB.Scylla), deps.Carts)
	coupons := payment.NewCouponHandler(deps.DB.Scylla)

	api := r.Group("/api", rl.API())

	// 🔓 Público
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	api.GET("/products", products.List)
	api.GET("/products/search", rl.Search(), products.Search)
	api.GET("/products/slug/:slug", products.GetBySlug)
	api.GET("/products/:id", products.GetByID)

	api.GET("/coupons/validate", coupons.Validate)

	// El gateway notifica acá, sin JWT.
	api.POST("/payments/webhook", webhook.Handle)

	// 🔒 Con sesión
	authed := api.Group("", middleware.AuthRequired())

	authed.GET("/auth/me", auth.Me)

	authed.GET("/cart", carts.Get)
	authed.POST("/cart", rl.Cart(), carts.Add)
	authed.DELETE("/cart", carts.Delete)
	authed.GET("/cart/totals", carts.Totals)
	authed.GET("/cart/ws", cartSync.Stream)

	authed.GET("/wishlist", wishlist.Get)
	authed.POST("/wishlist", wishlist.Add)
	authed.DELETE("/wishlist/:productId", wishlist.Remove)

	authed.POST("/payments/checkout", checkout.Create)
	authed.POST("/products", products.Create)
}
