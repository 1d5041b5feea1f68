package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM catalog_versions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = Run(context.Background(), db, func(ctx context.Context) error {
		sqlTx, ok := From(ctx)
		if !ok {
			return errors.New("no transaction in context")
		}
		_, err := sqlTx.ExecContext(ctx, "DELETE FROM catalog_versions")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = Run(context.Background(), db, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunJoinsAmbientTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	outer, err := db.Begin()
	require.NoError(t, err)

	calls := 0
	err = Run(WithTx(context.Background(), outer), db, func(ctx context.Context) error {
		calls++
		inner, _ := From(ctx)
		assert.Same(t, outer, inner)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithNilTxLeavesContext(t *testing.T) {
	ctx := WithTx(context.Background(), nil)
	_, ok := From(ctx)
	assert.False(t, ok)
}
