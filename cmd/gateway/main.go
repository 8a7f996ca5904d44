package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/acewig/storefront/api/controllers"
	"github.com/acewig/storefront/api/routes"
	cartsvc "github.com/acewig/storefront/internal/cart"
	"github.com/acewig/storefront/internal/catalog"
	checkoutsvc "github.com/acewig/storefront/internal/checkout"
	ordersvc "github.com/acewig/storefront/internal/orders"
	"github.com/acewig/storefront/internal/session"
	"github.com/acewig/storefront/internal/storeapi"
	wishlistsvc "github.com/acewig/storefront/internal/wishlist"
	"github.com/acewig/storefront/pkg/config"
	"github.com/acewig/storefront/pkg/localstore"
	"github.com/acewig/storefront/pkg/logger"
	"github.com/acewig/storefront/pkg/metrics"
	"github.com/acewig/storefront/pkg/redis"
)

// catalogCache adapts the redis client to the catalog cache contract with
// namespaced keys.
type catalogCache struct {
	client *redis.Client
}

func (c *catalogCache) Get(ctx context.Context, key string) (string, bool) {
	return c.client.Get(ctx, redis.CatalogKey(key))
}

func (c *catalogCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	c.client.Set(ctx, redis.CatalogKey(key), value, ttl)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var closers []func() error
	defer func() {
		var closeErr error
		for _, closeFn := range closers {
			closeErr = multierr.Append(closeErr, closeFn())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error closing resources", closeErr)
		}
	}()

	store, err := localstore.Open(context.Background(), cfg.LocalStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open local store", err)
		os.Exit(1)
	}
	closers = append(closers, store.Close)

	sess, err := session.Load(context.Background(), store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load session identity", err)
		os.Exit(1)
	}

	wishlist, err := wishlistsvc.Load(context.Background(), store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load wishlist", err)
		os.Exit(1)
	}

	readyChecks := map[string]controllers.Pinger{"localstore": store}

	var cache catalog.Cache
	if cfg.Cache.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Cache, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap cache", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readyChecks["cache"] = redisClient
		cache = &catalogCache{client: redisClient}
	}

	apiClient, err := storeapi.NewClient(cfg.Store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create store client", err)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(catalog.ServiceParams{
		API:    apiClient,
		Cache:  cache,
		TTL:    cfg.Cache.TTL,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		API:       apiClient,
		SessionID: sess.ID(),
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		API:    apiClient,
		Cart:   cartService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(ordersvc.ServiceParams{
		API:    apiClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	ctx = logg.WithSessionID(ctx, sess.ID())
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			Metrics:     httpMetrics,
			Registry:    registry,
			Catalog:     catalogSvc,
			Cart:        cartService,
			Checkout:    checkoutService,
			Orders:      ordersService,
			Wishlist:    wishlist,
			ReadyChecks: readyChecks,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
