package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockUnitOfWork(t *testing.T) (*unitOfWork, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return newUnitOfWork(db, false), mock
}

func stageBusinessEntity(uow *unitOfWork) {
	uow.BusinessEntities().Add(&entity.BusinessEntity{RowGUID: uuid.New(), ModifiedDate: time.Now().UTC()})
}

func TestUnitOfWork_BeginFailureIsStorageFault(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := uow.BeginTransaction(context.Background())

	require.Error(t, err)
	var dbErr *domainerrors.DatabaseExecuteError
	assert.True(t, errors.As(err, &dbErr))
	assert.False(t, uow.InTransaction())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_NestedBeginIsRejected(t *testing.T) {
	ctx := context.Background()
	uow, mock := newMockUnitOfWork(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	require.NoError(t, uow.BeginTransaction(ctx))
	assert.ErrorIs(t, uow.BeginTransaction(ctx), domainerrors.ErrTransactionInProgress)
	assert.True(t, uow.InTransaction())

	require.NoError(t, uow.Close())
	assert.False(t, uow.InTransaction())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_ClosedUnitRejectsWork(t *testing.T) {
	ctx := context.Background()
	uow, mock := newMockUnitOfWork(t)

	require.NoError(t, uow.Close())
	require.NoError(t, uow.Close())

	assert.ErrorIs(t, uow.BeginTransaction(ctx), domainerrors.ErrUnitOfWorkClosed)
	assert.ErrorIs(t, uow.SaveChanges(ctx), domainerrors.ErrUnitOfWorkClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_ExecuteRollsBackOnInsertFailure(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "business_entities"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := uow.Execute(context.Background(), func(uow repository.UnitOfWork) error {
		stageBusinessEntity(uow.(*unitOfWork))

		return uow.SaveChanges(context.Background())
	})

	require.Error(t, err)
	var dbErr *domainerrors.DatabaseExecuteError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "failed to insert business_entities row", dbErr.Details())
	assert.False(t, uow.InTransaction())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_ExecuteReportsCommitFailure(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "business_entities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"business_entity_id"}).AddRow(1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := uow.Execute(context.Background(), func(uow repository.UnitOfWork) error {
		stageBusinessEntity(uow.(*unitOfWork))

		return nil
	})

	require.Error(t, err)
	var dbErr *domainerrors.DatabaseExecuteError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "failed to commit transaction", dbErr.Details())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_ExecuteRollsBackOnPanic(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = uow.Execute(context.Background(), func(repository.UnitOfWork) error {
			panic("boom")
		})
	})

	assert.False(t, uow.InTransaction())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CommitWithoutTransactionIsNoop(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)

	assert.NoError(t, uow.Commit(context.Background()))
	assert.NoError(t, uow.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RollbackDropsStagedRows(t *testing.T) {
	ctx := context.Background()
	uow, mock := newMockUnitOfWork(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, uow.BeginTransaction(ctx))
	stageBusinessEntity(uow)
	require.NoError(t, uow.Rollback(ctx))

	require.NoError(t, uow.BeginTransaction(ctx))
	require.NoError(t, uow.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
