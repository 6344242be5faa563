// Package coderr собирает зависимости маркетплейса и запускает HTTP-сервер.
package coderr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/coderr/internal/cache"
	"github.com/magabrotheeeer/coderr/internal/config"
	"github.com/magabrotheeeer/coderr/internal/lib/jwt"
	"github.com/magabrotheeeer/coderr/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/migrations"
	"github.com/magabrotheeeer/coderr/internal/objectstore"
	authservice "github.com/magabrotheeeer/coderr/internal/services/auth"
	events "github.com/magabrotheeeer/coderr/internal/services/events"
	offerservice "github.com/magabrotheeeer/coderr/internal/services/offer"
	orderservice "github.com/magabrotheeeer/coderr/internal/services/order"
	profileservice "github.com/magabrotheeeer/coderr/internal/services/profile"
	reviewservice "github.com/magabrotheeeer/coderr/internal/services/review"
	statsservice "github.com/magabrotheeeer/coderr/internal/services/stats"
	"github.com/magabrotheeeer/coderr/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// Services объединяет бизнес-логику, которую обслуживают маршруты.
type Services struct {
	Auth    *authservice.AuthService
	Offers  *offerservice.OfferService
	Orders  *orderservice.OrderService
	Reviews *reviewservice.ReviewService
	Profile *profileservice.ProfileService
	Stats   *statsservice.StatsService
}

type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []func() error
}

// New подключает хранилища, применяет миграции и настраивает маршруты.
// Redis, MinIO и RabbitMQ необязательны: пустой адрес в конфиге отключает зависимость.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{logger: logger, db: db}

	var tokenCache authservice.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			app.close()
			return nil, err
		}
		tokenCache = redisCache
		app.closers = append(app.closers, redisCache.Close)
	} else {
		logger.Warn("redis address is empty, token cache disabled")
	}

	var files offerservice.Uploader
	if cfg.ObjectStorage.Endpoint != "" {
		store, err := objectstore.NewMinioStore(ctx, cfg.ObjectStorage)
		if err != nil {
			app.close()
			return nil, err
		}
		files = store
	} else {
		logger.Warn("object storage endpoint is empty, uploads disabled")
	}

	var broker events.Broker
	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, 5)
		if err != nil {
			app.close()
			return nil, err
		}
		broker = publisher
		app.closers = append(app.closers, publisher.Close)
	} else {
		logger.Warn("rabbitmq url is empty, order events disabled")
	}

	authService := authservice.NewAuthService(db, jwt.NewJWTMaker(cfg.Token.SecretKey, cfg.Token.TTL), tokenCache, cfg.Token.CacheTTL, logger)
	services := Services{
		Auth:    authService,
		Offers:  offerservice.NewOfferService(db, files, logger),
		Orders:  orderservice.NewOrderService(db, events.NewEventPublisher(broker, logger), logger),
		Reviews: reviewservice.NewReviewService(db, logger),
		Profile: profileservice.NewProfileService(db, files, authService, logger),
		Stats:   statsservice.NewStatsService(db),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, services, db, registry)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close dependency", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
