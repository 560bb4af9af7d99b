package routers

import (
	"oneroom-connector/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachEventRoutes(router chi.Router, eventController *controllers.EventController) {
	router.Post("/", eventController.HandleHostEvent)
}
