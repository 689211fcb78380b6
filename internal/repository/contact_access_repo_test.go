package repository

import (
	"context"
	"testing"
	"time"

	"campus_market/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactAccessRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactAccessRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO contact_access`).
		WithArgs(7, 3, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	a := &model.ContactAccess{ProductID: 7, BuyerID: 3, CreatedAt: now}
	err = repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactAccessRepository_Create_ExistingPair(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactAccessRepository(mock)
	granted := time.Now().Add(-time.Hour)

	// ON CONFLICT DO NOTHING returns no row when the grant already exists,
	// so the repo falls back to loading the original grant.
	mock.ExpectQuery(`INSERT INTO contact_access`).
		WithArgs(7, 3, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT (.+) FROM contact_access WHERE product_id = \$1 AND buyer_id = \$2`).
		WithArgs(7, 3).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "buyer_id", "created_at"}).
			AddRow(5, 7, 3, granted))

	a := &model.ContactAccess{ProductID: 7, BuyerID: 3, CreatedAt: time.Now()}
	err = repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 5, a.ID)
	assert.Equal(t, granted, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactAccessRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactAccessRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(7, 3).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.Exists(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, has)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepository(mock)

	mock.ExpectQuery(`UPDATE transactions SET status = \$1`).
		WithArgs("refunded", int64(99)).
		WillReturnError(pgx.ErrNoRows)

	tx, err := repo.UpdateStatus(context.Background(), 99, "refunded")
	assert.NoError(t, err)
	assert.Nil(t, tx)
	assert.NoError(t, mock.ExpectationsWereMet())
}
