package routers

import (
	"fmt"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/delivery/http/controllers"
	"oneroom-connector/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// SetupRoutes wires the middleware stack and mounts every controller under
// the configured prefix and version. deliveryController is nil when outcome
// persistence is not configured.
func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	eventController *controllers.EventController,
	deliveryController *controllers.DeliveryController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))

	router.Use(mw.RequestID)
	router.Use(mw.Logging)
	router.Use(mw.Recovery)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/events", func(r chi.Router) {
				attachEventRoutes(r, eventController)
			})

			if deliveryController != nil {
				r.Route("/deliveries", func(r chi.Router) {
					attachDeliveryRoutes(r, deliveryController)
				})
			}
		})
	})
}
