package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/payouts/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUoW_DoAndRepositories(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		participants, err := txUow.ParticipantRepository()
		require.NoError(err)
		_, ok := participants.(*participantRepository)
		assert.True(ok)

		routes, err := txUow.RouteRepository()
		require.NoError(err)
		_, ok = routes.(*routeRepository)
		assert.True(ok)

		exchanges, err := txUow.ExchangeRepository()
		require.NoError(err)
		_, ok = exchanges.(*exchangeRepository)
		assert.True(ok)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesOutsideTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	participants, err := uow.ParticipantRepository()
	require.NoError(t, err)
	assert.NotNil(t, participants)

	routes, err := uow.RouteRepository()
	require.NoError(t, err)
	assert.NotNil(t, routes)
}

func TestUoW_Do_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE participants`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("-1.00"))
	mock.ExpectRollback()

	sentinel := errors.New("negative")
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		participants, err := txUow.ParticipantRepository()
		if err != nil {
			return err
		}
		balance, err := participants.AdjustBalance(context.Background(), "alice", decimal.NewFromInt(-2))
		if err != nil {
			return err
		}
		if balance.IsNegative() {
			return sentinel
		}
		return nil
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
