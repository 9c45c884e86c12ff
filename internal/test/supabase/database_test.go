package supabase_test

import (
	"database/sql"
	"regexp"
	"testing"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/supabase"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockClient(t *testing.T) (*supabase.DatabaseClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return supabase.NewDatabaseClient(sqlx.NewDb(db, "sqlmock")), mock
}

func TestDatabaseClient_ReplaceSelections(t *testing.T) {
	client, mock := newMockClient(t)
	galleryID := uuid.New()
	email := "jane@example.com"
	rows := []models.ClientSelection{
		{ID: uuid.New(), PhotoID: uuid.New(), ClientName: "Jane", Notes: sql.NullString{String: "crop", Valid: true}},
		{ID: uuid.New(), PhotoID: uuid.New(), ClientName: "Jane"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_selections")).
		WithArgs(galleryID.String(), email).
		WillReturnResult(sqlmock.NewResult(0, 3))
	for _, r := range rows {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_selections")).
			WithArgs(r.ID.String(), galleryID.String(), r.PhotoID.String(), "Jane", email, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, client.ReplaceSelections(t.Context(), galleryID, email, rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseClient_ReplaceSelectionsRollsBack(t *testing.T) {
	client, mock := newMockClient(t)
	galleryID := uuid.New()
	rows := []models.ClientSelection{{ID: uuid.New(), PhotoID: uuid.New(), ClientName: "Jane"}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_selections")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_selections")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := client.ReplaceSelections(t.Context(), galleryID, "jane@example.com", rows)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseClient_GetGalleryByIDNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	galleryID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM galleries")).
		WithArgs(galleryID.String()).
		WillReturnError(sql.ErrNoRows)

	_, err := client.GetGalleryByID(t.Context(), galleryID)
	assert.ErrorIs(t, err, supabase.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseClient_DeleteGallery(t *testing.T) {
	client, mock := newMockClient(t)
	galleryID, userID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM galleries")).
		WithArgs(galleryID.String(), userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, client.DeleteGallery(t.Context(), galleryID, userID))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM galleries")).
		WithArgs(galleryID.String(), userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, client.DeleteGallery(t.Context(), galleryID, userID), supabase.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseClient_NextOrderIndex(t *testing.T) {
	client, mock := newMockClient(t)
	galleryID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(order_index) + 1, 0)")).
		WithArgs(galleryID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	next, err := client.NextOrderIndex(t.Context(), galleryID)
	require.NoError(t, err)
	assert.Equal(t, 7, next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseClient_ListSelectionsOrdering(t *testing.T) {
	client, mock := newMockClient(t)
	galleryID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY cs.selected_at ASC, p.order_index ASC")).
		WithArgs(galleryID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := client.ListSelections(t.Context(), galleryID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
