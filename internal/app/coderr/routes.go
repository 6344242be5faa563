package coderr

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/coderr/docs"
	"github.com/magabrotheeeer/coderr/internal/config"
	"github.com/magabrotheeeer/coderr/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/coderr/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/coderr/internal/http/handlers/baseinfo"
	"github.com/magabrotheeeer/coderr/internal/http/handlers/health"
	offerdetaillist "github.com/magabrotheeeer/coderr/internal/http/handlers/offerdetails/list"
	offerdetailread "github.com/magabrotheeeer/coderr/internal/http/handlers/offerdetails/read"
	offercreate "github.com/magabrotheeeer/coderr/internal/http/handlers/offers/create"
	offerimage "github.com/magabrotheeeer/coderr/internal/http/handlers/offers/image"
	offerlist "github.com/magabrotheeeer/coderr/internal/http/handlers/offers/list"
	offerread "github.com/magabrotheeeer/coderr/internal/http/handlers/offers/read"
	offerremove "github.com/magabrotheeeer/coderr/internal/http/handlers/offers/remove"
	offerupdate "github.com/magabrotheeeer/coderr/internal/http/handlers/offers/update"
	ordercount "github.com/magabrotheeeer/coderr/internal/http/handlers/orders/count"
	ordercreate "github.com/magabrotheeeer/coderr/internal/http/handlers/orders/create"
	orderlist "github.com/magabrotheeeer/coderr/internal/http/handlers/orders/list"
	orderread "github.com/magabrotheeeer/coderr/internal/http/handlers/orders/read"
	orderremove "github.com/magabrotheeeer/coderr/internal/http/handlers/orders/remove"
	orderupdate "github.com/magabrotheeeer/coderr/internal/http/handlers/orders/update"
	profilebusiness "github.com/magabrotheeeer/coderr/internal/http/handlers/profiles/business"
	profilecustomer "github.com/magabrotheeeer/coderr/internal/http/handlers/profiles/customer"
	profilefile "github.com/magabrotheeeer/coderr/internal/http/handlers/profiles/file"
	profilelist "github.com/magabrotheeeer/coderr/internal/http/handlers/profiles/list"
	profileread "github.com/magabrotheeeer/coderr/internal/http/handlers/profiles/read"
	profileupdate "github.com/magabrotheeeer/coderr/internal/http/handlers/profiles/update"
	reviewcreate "github.com/magabrotheeeer/coderr/internal/http/handlers/reviews/create"
	reviewlist "github.com/magabrotheeeer/coderr/internal/http/handlers/reviews/list"
	reviewread "github.com/magabrotheeeer/coderr/internal/http/handlers/reviews/read"
	reviewremove "github.com/magabrotheeeer/coderr/internal/http/handlers/reviews/remove"
	reviewupdate "github.com/magabrotheeeer/coderr/internal/http/handlers/reviews/update"
	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services, db health.Pinger, reg *prometheus.Registry) {
	metrics := middlewarectx.NewMetrics(reg)
	limiter := middlewarectx.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
		cors.New(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler,
		metrics.Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.Authenticate(s.Auth, logger))

		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware(logger))
			r.Post("/registration", register.New(logger, s.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		})
		r.Get("/offers", offerlist.New(logger, s.Offers).ServeHTTP)
		r.Get("/base-info", baseinfo.New(logger, s.Stats).ServeHTTP)
		r.Get("/profile", profilelist.New(logger, s.Profile).ServeHTTP)
		r.Get("/profile/{pk}", profileread.New(logger, s.Profile).ServeHTTP)
		r.Get("/profiles/business", profilebusiness.New(logger, s.Profile).ServeHTTP)
		r.Get("/profiles/customer", profilecustomer.New(logger, s.Profile).ServeHTTP)
		r.Get("/order-count/{business_user_id}", ordercount.NewTotal(logger, s.Orders).ServeHTTP)
		r.Get("/completed-order-count/{business_user_id}", ordercount.NewCompleted(logger, s.Orders).ServeHTTP)

		// Группа с обязательной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuth)

			r.Post("/offers", offercreate.New(logger, s.Offers).ServeHTTP)
			r.Get("/offers/{id}", offerread.New(logger, s.Offers).ServeHTTP)
			r.Patch("/offers/{id}", offerupdate.New(logger, s.Offers).ServeHTTP)
			r.Delete("/offers/{id}", offerremove.New(logger, s.Offers).ServeHTTP)
			r.Post("/offers/{id}/image", offerimage.New(logger, s.Offers).ServeHTTP)
			r.Get("/offerdetails", offerdetaillist.New(logger, s.Offers).ServeHTTP)
			r.Get("/offerdetails/{id}", offerdetailread.New(logger, s.Offers).ServeHTTP)

			r.Post("/orders", ordercreate.New(logger, s.Orders).ServeHTTP)
			r.Get("/orders", orderlist.New(logger, s.Orders).ServeHTTP)
			r.Get("/orders/{id}", orderread.New(logger, s.Orders).ServeHTTP)
			r.Patch("/orders/{id}", orderupdate.New(logger, s.Orders).ServeHTTP)
			r.Delete("/orders/{id}", orderremove.New(logger, s.Orders).ServeHTTP)

			r.Get("/reviews", reviewlist.New(logger, s.Reviews).ServeHTTP)
			r.Post("/reviews", reviewcreate.New(logger, s.Reviews).ServeHTTP)
			r.Get("/reviews/{id}", reviewread.New(logger, s.Reviews).ServeHTTP)
			r.Patch("/reviews/{id}", reviewupdate.New(logger, s.Reviews).ServeHTTP)
			r.Delete("/reviews/{id}", reviewremove.New(logger, s.Reviews).ServeHTTP)

			r.Patch("/profile/{pk}", profileupdate.New(logger, s.Profile).ServeHTTP)
			r.Post("/profile/{pk}/file", profilefile.New(logger, s.Profile).ServeHTTP)
		})
	})

	r.Handle("/healthz", health.New(logger, db))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
