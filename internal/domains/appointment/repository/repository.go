package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"pomade/infras/otel"
	"pomade/infras/postgres"
	"pomade/internal/domains/appointment/model"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/failure"
	gRepo "pomade/shared/repository"
)

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert translates the partial unique index violation on occupied slots
// into a conflict, so two requests racing for the same date and time can
// never both land.
func (r *repositoryImpl) Insert(ctx context.Context, mod model.Appointment) error {
	err := r.Repository.Insert(ctx, mod)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return failure.SlotTaken
	}

	return err
}

type Deletion interface {
	Insert(ctx context.Context, model model.DeletionRecord) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DeletionRecord, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type deletionRepositoryImpl struct {
	gRepo.Repository[model.DeletionRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func NewDeletion(db *postgres.Connection, otel otel.Otel) Deletion {
	return &deletionRepositoryImpl{
		Repository: gRepo.NewRepository[model.DeletionRecord](model.DeletionEntityName, model.DeletionTableName, model.FieldDeletionID, db, otel),
		db:         db,
		otel:       otel,
	}
}
