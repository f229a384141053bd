package postgres

import (
	"context"
	"regexp"
	"testing"

	"carspares/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a GORM connection backed by sqlmock so the repository's
// generated SQL can be asserted without a running database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

const reduceQuantitySQL = `UPDATE "products" SET "quantity"=GREATEST(quantity - $1, 0),"updated_at"=$2 WHERE id = $3`

func TestProductRepository_ReduceQuantity_FloorsAtZeroInSQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()

	// The decrement must be a single UPDATE carrying the floor expression,
	// so an oversized reduction lands on exactly zero, never negative.
	mock.ExpectExec(regexp.QuoteMeta(reduceQuantitySQL)).
		WithArgs(5, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReduceQuantity(context.Background(), productID, 5)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ReduceQuantity_UnknownProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(reduceQuantitySQL)).
		WithArgs(2, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ReduceQuantity(context.Background(), productID, 2)

	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ReduceQuantity_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(reduceQuantitySQL)).
		WithArgs(1, sqlmock.AnyArg(), productID).
		WillReturnError(assert.AnError)

	err := repo.ReduceQuantity(context.Background(), productID, 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
