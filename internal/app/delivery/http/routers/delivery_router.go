package routers

import (
	"oneroom-connector/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDeliveryRoutes(router chi.Router, deliveryController *controllers.DeliveryController) {
	router.Get("/{eventID}", deliveryController.HandleFindByEventID)
}
