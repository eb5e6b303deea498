package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

func newMockDB(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewRepository(db), mock
}

func TestResolveApprovalRecordFirstWriterWins(t *testing.T) {
	repo, mock := newMockDB(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE "delivery_note_approvals" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), id, string(models.ApprovalPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ResolveApprovalRecord(context.Background(), id, models.ApprovalApproved, time.Now(), "ok")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveApprovalRecordSecondWriterFails(t *testing.T) {
	repo, mock := newMockDB(t)

	id := uuid.New()
	// The guarded update matches no row once the record left pending.
	mock.ExpectExec(`UPDATE "delivery_note_approvals" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), id, string(models.ApprovalPending)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ResolveApprovalRecord(context.Background(), id, models.ApprovalRejected, time.Now(), "")
	require.ErrorIs(t, err, ErrAlreadyResolved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustProductStockUsesRelativeUpdate(t *testing.T) {
	repo, mock := newMockDB(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity \+ \$1`).
		WithArgs(5, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AdjustProductStock(context.Background(), id, 5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
