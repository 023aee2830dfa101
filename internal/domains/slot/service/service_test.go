package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"pomade/config"
	"pomade/infras/otel/mocks"
	apptMocks "pomade/internal/domains/appointment/mocks"
	apptModel "pomade/internal/domains/appointment/model"
	"pomade/internal/domains/slot/service"
	cacheMocks "pomade/shared/cache/mocks"
	"pomade/shared/failure"
	gModel "pomade/shared/model"
)

func TestSlotService_GetDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := apptMocks.NewMockAppointment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	appointmentAt := func(clock string) apptModel.Appointment {
		slot, _ := time.Parse("15:04", clock)

		return apptModel.Appointment{
			ID:       "appt-" + clock,
			Date:     time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC),
			Time:     slot,
			Service:  "Haircut",
			Status:   apptModel.StatusPending,
			Metadata: gModel.Metadata{},
		}
	}

	tests := []struct {
		name       string
		date       string
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantBooked []string
	}{
		{
			name: "successful availability with occupied slots",
			date: "2030-05-20",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]apptModel.Appointment{appointmentAt("10:00"), appointmentAt("17:30")}, nil)
			},
			wantErr:    false,
			wantBooked: []string{"10:00", "17:30"},
		},
		{
			name: "occupied slots served from cache",
			date: "2030-05-20",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						times, ok := value.(*[]string)
						if ok {
							*times = []string{"09:30"}
						}

						return nil
					})
			},
			wantErr:    false,
			wantBooked: []string{"09:30"},
		},
		{
			name:      "invalid date parameter",
			date:      "20-05-2030",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			date: "2030-05-20",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetDay(context.Background(), tt.date)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.date, res.Date)
			assert.Len(t, res.Slots, 23)

			booked := map[string]bool{}
			for _, want := range tt.wantBooked {
				booked[want] = true
			}

			for _, slot := range res.Slots {
				assert.Equal(t, booked[slot.Time], slot.IsBooked, "slot %s", slot.Time)
				assert.Equal(t, !booked[slot.Time], slot.Available, "slot %s", slot.Time)
				assert.False(t, slot.IsPast, "slot %s", slot.Time)
			}
		})
	}
}
