package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pomade/config"
	"pomade/infras/directory"
	"pomade/infras/kafka"
	"pomade/infras/otel"
	"pomade/internal/domains/appointment/model"
	"pomade/internal/domains/appointment/model/dto"
	"pomade/internal/domains/appointment/repository"
	slotModel "pomade/internal/domains/slot/model"
	slotService "pomade/internal/domains/slot/service"
	"pomade/shared"
	"pomade/shared/cache"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/failure"
	"pomade/shared/timezone"
)

const (
	cachePendingAppointments = "appointment:pending"
	cacheSchedule            = "appointment:schedule"
	cacheDeletionRecords     = "appointment:deletions"
)

const (
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentApproved = "appointment.approved"
	EventAppointmentRejected = "appointment.rejected"
	EventAppointmentDeleted  = "appointment.deleted"
)

// ErrDeleteUnfinished marks a half-finished removal: the audit record exists
// but the appointment row is still in place.
var ErrDeleteUnfinished = errors.New("appointment deletion unfinished: audit recorded but appointment not removed")

type appointmentEvent struct {
	Type        string                  `json:"type"`
	Appointment dto.AppointmentResponse `json:"appointment"`
	OccurredAt  string                  `json:"occurred_at"`
}

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	GetPending(ctx context.Context) (dto.GetPendingAppointmentsResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, req dto.RejectAppointmentRequest, id string) error
	GetSchedule(ctx context.Context, date string) (dto.GetScheduleResponse, error)
	Delete(ctx context.Context, req dto.DeleteAppointmentRequest, id string) error
	GetDeletionRecords(ctx context.Context, params gDto.QueryParams) (dto.GetDeletionRecordsResponse, error)
}

type serviceImpl struct {
	repo         repository.Appointment
	deletionRepo repository.Deletion
	directory    directory.Directory
	broker       kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Appointment,
	deletionRepo repository.Deletion,
	dir directory.Directory,
	broker kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:         repo,
		deletionRepo: deletionRepo,
		directory:    dir,
		broker:       broker,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appt, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !slotModel.InCatalog(req.Time) {
		return res, failure.BadRequestFromString("requested time is not a bookable slot") // nolint:wrapcheck
	}

	if slotMoment(appt.Date, appt.Time).Before(timezone.Now()) {
		return res, failure.BadRequestFromString("cannot book a slot in the past") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, appt); err != nil {
		if failure.IsCode(err, failure.SlotTaken.Code) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	res.FromModel(appt)

	s.afterMutation(ctx, EventAppointmentCreated, res)

	return res, nil
}

func (s *serviceImpl) GetPending(ctx context.Context) (res dto.GetPendingAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPending")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cachePendingAppointments, &res)
	if err == nil {
		log.Info().Str("cacheKey", cachePendingAppointments).Msg("cache hit for pending appointments")

		return res, nil
	}

	filter := filterByStatus(model.StatusPending)
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	appointments, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending appointments")

		return res, fmt.Errorf("failed to get pending appointments: %w", err)
	}

	res.TotalData = len(appointments)
	res.Appointments = make([]dto.PendingAppointmentResponse, len(appointments))

	for i, appt := range appointments {
		s.enrichFromDirectory(ctx, &appt)
		res.Appointments[i].FromModel(appt)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cachePendingAppointments, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pending appointments to cache")
		}
	}()

	return res, nil
}

// enrichFromDirectory overlays the stored customer snapshot with the profile
// held by the user directory. Directory failures only mean the snapshot
// stands as-is.
func (s *serviceImpl) enrichFromDirectory(ctx context.Context, appt *model.Appointment) {
	if appt.CustomerEmail == constant.Empty {
		return
	}

	profile, err := s.directory.LookupByEmail(ctx, appt.CustomerEmail)
	if err != nil {
		log.Warn().Err(err).Str("email", appt.CustomerEmail).Msg("directory lookup failed, using stored snapshot")

		return
	}

	if profile.Name != constant.Empty {
		appt.CustomerName = profile.Name
	}

	if profile.PhoneNumber != constant.Empty {
		appt.CustomerPhone = profile.PhoneNumber
	}
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	appt, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if appt.Status == model.StatusApproved {
		return nil
	}

	if appt.Status != model.StatusPending {
		return failure.Conflict(fmt.Sprintf("cannot approve a %s appointment", appt.Status)) // nolint:wrapcheck
	}

	if err = s.updateStatus(ctx, id, map[string]any{model.FieldStatus: model.StatusApproved}); err != nil {
		return err
	}

	appt.Status = model.StatusApproved

	var res dto.AppointmentResponse
	res.FromModel(appt)

	s.afterMutation(ctx, EventAppointmentApproved, res)

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.RejectAppointmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	appt, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if appt.Status == model.StatusRejected {
		return nil
	}

	if appt.Status != model.StatusPending {
		return failure.Conflict(fmt.Sprintf("cannot reject a %s appointment", appt.Status)) // nolint:wrapcheck
	}

	mod := map[string]any{
		model.FieldStatus:          model.StatusRejected,
		model.FieldRejectionReason: req.Reason,
	}

	if err = s.updateStatus(ctx, id, mod); err != nil {
		return err
	}

	appt.Status = model.StatusRejected
	appt.RejectionReason = req.Reason

	var res dto.AppointmentResponse
	res.FromModel(appt)

	s.afterMutation(ctx, EventAppointmentRejected, res)

	return nil
}

func (s *serviceImpl) GetSchedule(ctx context.Context, date string) (res dto.GetScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := time.Parse(constant.BookingDateFmt, date)
	if err != nil {
		return res, failure.InvalidDateParam // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheSchedule, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Table:    model.TableName,
				Value:    day,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Value:    model.StatusApproved,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldTime, SortDir: gDto.SortDirAsc}

	appointments, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return res, fmt.Errorf("failed to get schedule: %w", err)
	}

	res.FromModels(day, appointments)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteAppointmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	appt, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.RoleAdmin
	}

	record := model.DeletionRecord{
		ID:            uuid.NewString(),
		AppointmentID: appt.ID,
		CustomerName:  appt.CustomerName,
		CustomerPhone: appt.CustomerPhone,
		Date:          appt.Date,
		Time:          appt.Time,
		Service:       appt.Service,
		DeleteReason:  req.Reason,
		DeletedAt:     timezone.Now(),
		DeletedBy:     user,
	}

	// The audit record must exist before the row disappears. Losing the
	// appointment without a trace is worse than a duplicate audit entry.
	if err = s.deletionRepo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to record appointment deletion")

		return fmt.Errorf("failed to record appointment deletion: %w", err)
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("appointment deletion unfinished")

		return fmt.Errorf("%w: %v", ErrDeleteUnfinished, err)
	}

	var res dto.AppointmentResponse
	res.FromModel(appt)

	s.afterMutation(ctx, EventAppointmentDeleted, res)

	return nil
}

func (s *serviceImpl) GetDeletionRecords(ctx context.Context, params gDto.QueryParams) (res dto.GetDeletionRecordsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDeletionRecords")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheDeletionRecords, params, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for deletion records")

		return res, nil
	}

	if params.SortBy == constant.Empty {
		params.SortBy = "deleted_at"
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.deletionRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count deletion records")

		return res, fmt.Errorf("failed to count deletion records: %w", err)
	}

	records, err := s.deletionRepo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get deletion records")

		return res, fmt.Errorf("failed to get deletion records: %w", err)
	}

	res.FromModels(records, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save deletion records to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Appointment, error) {
	appt, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return appt, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appt.ID == constant.Empty {
		return appt, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appt, nil
}

func (s *serviceImpl) updateStatus(ctx context.Context, id string, mod map[string]any) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	mod[constant.FieldModifiedAt] = timezone.Now()
	mod[constant.FieldModifiedBy] = user

	if err := s.repo.Update(ctx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	return nil
}

// afterMutation publishes the lifecycle event and drops every cache the
// mutation may have staled. Both run outside the request lifetime.
func (s *serviceImpl) afterMutation(ctx context.Context, eventType string, appt dto.AppointmentResponse) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := appointmentEvent{
			Type:        eventType,
			Appointment: appt,
			OccurredAt:  timezone.Now().Format(constant.DateFormat),
		}

		message := kafka.Message{Key: appt.ID, Value: event}
		if err := s.broker.SendMessages(c, s.cfg.Kafka.AppointmentsTopic, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish appointment event")
		}

		shared.InvalidateCaches(c, s.cache, cachePendingAppointments)
		shared.InvalidateCaches(c, s.cache, cacheSchedule)
		shared.InvalidateCaches(c, s.cache, cacheDeletionRecords)
		shared.InvalidateCaches(c, s.cache, slotService.CacheOccupiedSlots)
	}()
}

func filterByStatus(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}
}

func slotMoment(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		timezone.GetLocation(),
	)
}
