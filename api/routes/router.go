package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acewig/storefront/api/controllers"
	"github.com/acewig/storefront/api/middleware"
	cartsvc "github.com/acewig/storefront/internal/cart"
	"github.com/acewig/storefront/internal/catalog"
	checkoutsvc "github.com/acewig/storefront/internal/checkout"
	ordersvc "github.com/acewig/storefront/internal/orders"
	wishlistsvc "github.com/acewig/storefront/internal/wishlist"
	"github.com/acewig/storefront/pkg/config"
	"github.com/acewig/storefront/pkg/logger"
	"github.com/acewig/storefront/pkg/metrics"
)

// Params carries everything the router needs wired in.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	Registry    *prometheus.Registry
	Catalog     *catalog.Service
	Cart        *cartsvc.Service
	Checkout    *checkoutsvc.Service
	Orders      *ordersvc.Service
	Wishlist    *wishlistsvc.List
	ReadyChecks map[string]controllers.Pinger
}

// NewRouter assembles the storefront gateway surface.
func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.ReadyChecks))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(p.Catalog, p.Config, p.Logger))
			r.Get("/search", controllers.SearchProducts(p.Catalog, p.Config, p.Logger))
			r.Get("/{slug}", controllers.ProductDetail(p.Catalog, p.Logger))
			r.Get("/{slug}/related", controllers.RelatedProducts(p.Catalog, p.Config, p.Logger))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(p.Catalog, p.Logger))
			r.Get("/{slug}", controllers.CategoryDetail(p.Catalog, p.Logger))
			r.Get("/{slug}/products", controllers.CategoryProducts(p.Catalog, p.Config, p.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(p.Cart, p.Logger))
			r.Post("/items", controllers.CartAddItem(p.Cart, p.Logger))
			r.Patch("/items/{variantId}", controllers.CartUpdateItem(p.Cart, p.Logger))
			r.Delete("/items/{variantId}", controllers.CartRemoveItem(p.Cart, p.Logger))
		})

		r.Post("/checkout", controllers.Checkout(p.Checkout, p.Cart, p.Logger))

		r.Get("/orders/status", controllers.OrderStatus(p.Orders, p.Logger))

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(p.Wishlist))
			r.Post("/toggle", controllers.WishlistToggle(p.Wishlist, p.Logger))
			r.Delete("/{productId}", controllers.WishlistRemove(p.Wishlist, p.Logger))
		})
	})

	return r
}
