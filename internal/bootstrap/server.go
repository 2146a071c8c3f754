package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Domenick1991/turfbooking/api"
	"github.com/Domenick1991/turfbooking/config"
	"github.com/Domenick1991/turfbooking/internal/service/booking"
	"github.com/Domenick1991/turfbooking/internal/service/credentials"
	"github.com/Domenick1991/turfbooking/internal/service/slots"
)

const swaggerFile = "turf.swagger.json"

// Deps are the services and infrastructure the HTTP server is built from.
type Deps struct {
	Credentials credentials.CredentialUseCase
	Slots       slots.SlotUseCase
	Bookings    booking.BookingUseCase
	Tokens      api.TokenParser
	Revocations api.RevocationChecker
	Health      map[string]api.Pinger
	Log         zerolog.Logger
}

// Run serves the HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Log.Info().Str("addr", cfg.HTTP.Address).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		deps.Log.Info().Msg("http server stopped")
		return nil
	}
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(deps.Log), api.Metrics())

	if len(cfg.HTTP.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api.NewHealthHandler(deps.Health).Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		r.StaticFile("/swagger/"+swaggerFile, cfg.HTTP.SwaggerDir+"/"+swaggerFile)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/"+swaggerFile))))
	}

	authenticated := api.Auth(deps.Tokens, deps.Revocations)

	v1 := r.Group("/api/v1")
	api.NewAuthHandler(deps.Credentials).Register(v1.Group("/auth"), authenticated)
	api.NewTurfHandler(cfg.Turf).Register(v1.Group("/turf"))
	api.NewSlotHandler(deps.Slots).Register(v1.Group("/slots", authenticated))
	api.NewBookingHandler(deps.Bookings).Register(v1.Group("/bookings", authenticated))
	api.NewOwnerHandler(deps.Slots, deps.Bookings).Register(v1.Group("/owner", authenticated))

	return r
}
