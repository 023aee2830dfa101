package router

import (
	"github.com/go-chi/chi/v5"

	"pomade/internal/handlers/appointment"
	"pomade/internal/handlers/slots"
	"pomade/internal/handlers/user"
)

type DomainHandlers struct {
	Slots       slots.Handler
	Appointment appointment.Handler
	User        user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Slots.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
