package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/civiq/internal/model"
)

func newMockStore(t *testing.T) (*ZipStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewZipStore(db), mock
}

func TestZipStore_LookupZip(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"zip", "state", "district"}).
		AddRow("48202", "MI", "12").
		AddRow("48202", "MI", "13")
	mock.ExpectQuery(`SELECT zip, state, district\s+FROM zip_districts\s+WHERE zip = \$1`).
		WithArgs("48202").
		WillReturnRows(rows)

	districts, err := store.LookupZip(context.Background(), "48202")
	require.NoError(t, err)
	assert.Equal(t, []model.ZipDistrict{
		{Zip: "48202", State: "MI", District: "12"},
		{Zip: "48202", State: "MI", District: "13"},
	}, districts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZipStore_LookupZipUnknown(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`FROM zip_districts`).
		WithArgs("00000").
		WillReturnRows(sqlmock.NewRows([]string{"zip", "state", "district"}))

	districts, err := store.LookupZip(context.Background(), "00000")
	require.NoError(t, err)
	assert.Empty(t, districts)
}

func TestZipStore_LookupZipQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`FROM zip_districts`).
		WithArgs("48202").
		WillReturnError(errors.New("connection reset"))

	_, err := store.LookupZip(context.Background(), "48202")
	assert.ErrorContains(t, err, "connection reset")
}

func TestZipStore_SaveBatch(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO zip_districts`)
	prep.ExpectExec().WithArgs("48202", "MI", "12").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("82001", "WY", "01").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := store.SaveBatch(context.Background(), []model.ZipDistrict{
		{Zip: "48202", State: "MI", District: "12"},
		{Zip: "82001", State: "WY", District: "01"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZipStore_SaveBatchRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO zip_districts`)
	prep.ExpectExec().WithArgs("48202", "MI", "12").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := store.SaveBatch(context.Background(), []model.ZipDistrict{
		{Zip: "48202", State: "MI", District: "12"},
	})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZipStore_EnsureSchemaAndCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS zip_districts`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zip_districts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(33791))

	require.NoError(t, store.EnsureSchema(context.Background()))
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33791, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
