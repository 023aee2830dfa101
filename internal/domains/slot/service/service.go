package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pomade/config"
	"pomade/infras/otel"
	apptModel "pomade/internal/domains/appointment/model"
	apptRepo "pomade/internal/domains/appointment/repository"
	"pomade/internal/domains/slot/model"
	"pomade/internal/domains/slot/model/dto"
	"pomade/shared"
	"pomade/shared/cache"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/failure"
	"pomade/shared/timezone"
)

// CacheOccupiedSlots holds the occupied times per date. Only the occupied
// set is cached, never the computed availability, because the past flags
// depend on the current clock.
const CacheOccupiedSlots = "slot:occupied"

type Slot interface {
	GetDay(ctx context.Context, date string) (dto.GetDaySlotsResponse, error)
}

type serviceImpl struct {
	apptRepo apptRepo.Appointment
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(apptRepo apptRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		apptRepo: apptRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) GetDay(ctx context.Context, date string) (res dto.GetDaySlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := time.Parse(constant.BookingDateFmt, date)
	if err != nil {
		return res, failure.InvalidDateParam // nolint:wrapcheck
	}

	occupied, err := s.occupiedTimes(ctx, day, date)
	if err != nil {
		return res, err
	}

	res.FromSlots(day, model.ComputeDay(day, occupied, timezone.Now()))

	return res, nil
}

func (s *serviceImpl) occupiedTimes(ctx context.Context, day time.Time, date string) (map[string]bool, error) {
	cacheKey := shared.BuildCacheKey(CacheOccupiedSlots, date)

	var times []string

	err := s.cache.Get(ctx, cacheKey, &times)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for occupied slots")

		return toOccupiedSet(times), nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    apptModel.FieldDate,
				Table:    apptModel.TableName,
				Value:    day,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    apptModel.FieldStatus,
				Table:    apptModel.TableName,
				Value:    apptModel.OccupyingStatuses,
				Operator: gDto.FilterOperatorIn,
			},
		},
	}

	appointments, err := s.apptRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupying appointments")

		return nil, fmt.Errorf("failed to get occupying appointments: %w", err)
	}

	times = make([]string, len(appointments))
	for i, appt := range appointments {
		times[i] = appt.Time.Format(constant.BookingTimeFmt)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, times, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save occupied slots to cache")
		}
	}()

	return toOccupiedSet(times), nil
}

func toOccupiedSet(times []string) map[string]bool {
	occupied := make(map[string]bool, len(times))
	for _, t := range times {
		occupied[t] = true
	}

	return occupied
}
