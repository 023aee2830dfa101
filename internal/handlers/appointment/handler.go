package appointment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pomade/infras/otel"
	"pomade/internal/domains/appointment/model/dto"
	"pomade/internal/domains/appointment/service"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/validator"
	"pomade/transport/http/response"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/pending", handler.GetPendingAppointments)
		routerGroup.Get("/schedule", handler.GetSchedule)
		routerGroup.Get("/deletions", handler.GetDeletionRecords)
		routerGroup.Post("/{id}/approve", handler.ApproveAppointment)
		routerGroup.Post("/{id}/reject", handler.RejectAppointment)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
	})
}

// CreateAppointment books a slot.
// @Summary Create a new appointment
// @Description Book a slot on a date. The appointment starts in pending status and must be approved before it appears on the schedule.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	appt, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment created successfully for " + appt.CustomerEmail)

	response.WithJSON(w, http.StatusCreated, appt)
}

// GetPendingAppointments lists appointments awaiting review.
// @Summary Get pending appointments
// @Description Retrieve all pending appointments, newest first, with customer contact details resolved against the user directory.
// @Tags Appointment
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetPendingAppointmentsResponse] "Pending appointments"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingAppointments")
	defer scope.End()

	pending, err := handler.service.GetPending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pending appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, pending)
}

// GetSchedule returns the approved appointments for a date.
// @Summary Get the schedule for a date
// @Description Retrieve the approved appointments for the given date, ordered by slot time.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetScheduleResponse] "Schedule for the date"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/schedule [get]
// @Security BearerAuth
func (handler *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedule")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	schedule, err := handler.service.GetSchedule(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedule)
}

// GetDeletionRecords lists the audit trail of removed appointments.
// @Summary Get appointment deletion records
// @Description Retrieve the audit records written when appointments were removed from the schedule, newest first.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetDeletionRecordsResponse] "Deletion records"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/deletions [get]
// @Security BearerAuth
func (handler *Handler) GetDeletionRecords(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDeletionRecords")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	records, err := handler.service.GetDeletionRecords(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get deletion records")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Deletion records retrieved successfully")

	response.WithJSON(w, http.StatusOK, records)
}

// ApproveAppointment confirms a pending appointment.
// @Summary Approve an appointment
// @Description Move a pending appointment to approved. Approving an already approved appointment is a no-op.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment approved successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment approved successfully")

	response.WithMessage(w, http.StatusOK, "Appointment approved successfully")
}

// RejectAppointment declines a pending appointment.
// @Summary Reject an appointment
// @Description Move a pending appointment to rejected, recording the reason. The slot becomes bookable again.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RejectAppointmentRequest true "Reject Appointment Request"
// @Success 200 {object} response.Message "Appointment rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment rejected successfully")

	response.WithMessage(w, http.StatusOK, "Appointment rejected successfully")
}

// DeleteAppointment removes an appointment from the schedule with an audit record.
// @Summary Delete an appointment
// @Description Remove an appointment, writing an audit record with the reason before the row is deleted.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.DeleteAppointmentRequest true "Delete Appointment Request"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DeleteAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}
