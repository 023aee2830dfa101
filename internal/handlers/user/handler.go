package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pomade/infras/otel"
	"pomade/internal/domains/user/service"
	"pomade/shared/constant"
	"pomade/transport/http/response"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/by-email/{email}", handler.GetUserByEmail)
	})
}

// GetUserByEmail resolves a user profile by email address.
// @Summary Get a user by email
// @Description Look up a user profile by email. Responses use the directory envelope consumed by sibling services.
// @Tags User
// @Accept json
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} response.Envelope[dto.ProfileResponse] "User profile"
// @Failure 404 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/users/by-email/{email} [get]
func (handler *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByEmail")
	defer scope.End()

	email := chi.URLParam(r, constant.RequestParamEmail)

	profile, err := handler.service.GetByEmail(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user by email")

		response.WithEnvelopeError(w, err)

		return
	}

	scope.AddEvent("User profile retrieved successfully")

	response.WithEnvelope(w, http.StatusOK, profile)
}
