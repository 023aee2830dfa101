package slots

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pomade/infras/otel"
	"pomade/internal/domains/slot/service"
	"pomade/shared/constant"
	"pomade/transport/http/response"
)

type Handler struct {
	service service.Slot
	otel    otel.Otel
}

func New(service service.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/slots", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDaySlots)
	})
}

// GetDaySlots returns the availability of every bookable slot on a date.
// @Summary Get slot availability for a date
// @Description Evaluate the full slot catalog for the given date, marking each slot as booked, past, or available.
// @Tags Slots
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetDaySlotsResponse] "Slot availability"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots [get]
func (handler *Handler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDaySlots")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	slots, err := handler.service.GetDay(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get day slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Day slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}
