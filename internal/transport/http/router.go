package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/medilink-notifier/docs"
	"github.com/medilink-notifier/internal/config"
	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/logger"
	"github.com/medilink-notifier/internal/transport/http/handler"
	appmiddleware "github.com/medilink-notifier/internal/transport/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"
)

// maxJSONBody caps JSON request bodies at 10kb.
const maxJSONBody = 10 << 10

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Logging(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	authMw := appmiddleware.Auth(deps.JWTProvider, appmiddleware.AuthOptions{
		Strict: cfg.StrictAuth(),
		Scope:  domain.ScopeNotifications,
	})
	limiter := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	jsonBody := chimiddleware.RequestSize(maxJSONBody)

	healthH := handler.NewHealthHandler(cfg.AppEnv)
	userH := handler.NewUserHandler(deps.Mail, deps.Recovery)
	notifH := handler.NewNotificationHandler(deps.Push, deps.Directory)
	fileH := handler.NewFileHandler(deps.Files)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Limit)

		r.Route("/v1", func(r chi.Router) {
			r.Get("/test", healthH.Test)

			r.Route("/users", func(r chi.Router) {
				r.Use(jsonBody)
				r.Post("/sendMailService", userH.SendMail)
				r.Post("/resetPasswordDirect", userH.ResetPassword)
			})

			r.Route("/notifications", func(r chi.Router) {
				// Public: token issuance and the provider-free echo.
				r.Get("/get-fcm-token", notifH.AccessToken)
				r.With(jsonBody).Post("/test-send", notifH.Preview)

				r.Group(func(r chi.Router) {
					r.Use(authMw)
					r.With(jsonBody).Post("/send", notifH.Send)
					r.With(jsonBody).Post("/send-v1", notifH.Send)
					r.With(jsonBody).Post("/save", notifH.Save)
					r.Get("/user-token/{userId}", notifH.UserToken)
				})
			})

			r.Post("/patients/{patientId}/files", fileH.Upload)
			r.Get("/files/{fileId}", fileH.Metadata)
		})
	})

	r.Get("/uploads/*", fileH.Download)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
