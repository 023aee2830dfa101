package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"pomade/config"
	"pomade/infras/otel/mocks"
	userMocks "pomade/internal/domains/user/mocks"
	"pomade/internal/domains/user/model"
	"pomade/internal/domains/user/service"
	cacheMocks "pomade/shared/cache/mocks"
	"pomade/shared/failure"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"
)

func TestUserService_GetByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		email     string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantName  string
	}{
		{
			name:  "user found",
			email: "jamie@example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{
						ID:          "user-1",
						Name:        "Jamie Rivera",
						Email:       "jamie@example.com",
						PhoneNumber: "555-0199",
						Role:        "customer",
						Metadata: gModel.Metadata{
							CreatedAt: timezone.Now(),
						},
					}, nil)
			},
			wantErr:  false,
			wantName: "Jamie Rivera",
		},
		{
			name:  "user not found",
			email: "ghost@example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:  "repository error",
			email: "jamie@example.com",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Name)
			assert.Equal(t, tt.email, res.Email)
		})
	}
}
