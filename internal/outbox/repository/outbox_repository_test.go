package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/mist/internal/outbox/domain"
)

var (
	testTime      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	outboxColumns = []string{
		"id", "event_type", "payload", "status", "retries", "last_error", "processed_at", "created_at", "updated_at",
	}
)

func TestPostgreSQLOutboxEventRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	event, err := domain.NewOutboxEvent("deposit.observed", map[string]int{"amount": 1}, testTime)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO outbox_events`)).
		WithArgs(event.ID, "deposit.observed", `{"amount":1}`, "pending", 0, nil, nil, testTime, testTime).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgreSQLOutboxEventRepository(db).Create(context.Background(), event)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE SKIP LOCKED`)).
			WithArgs("pending", 10).
			WillReturnRows(sqlmock.NewRows(outboxColumns).
				AddRow(id.String(), "intent.observed", `{}`, "pending", 0, nil, nil, testTime, testTime))

		events, err := NewPostgreSQLOutboxEventRepository(db).GetPendingEvents(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, id, events[0].ID)
		assert.Equal(t, domain.OutboxEventStatusPending, events[0].Status)
		assert.Nil(t, events[0].LastError)
	})

	t.Run("Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbErr := errors.New("boom")
		mock.ExpectQuery(regexp.QuoteMeta(`FROM outbox_events`)).WillReturnError(dbErr)

		_, err = NewPostgreSQLOutboxEventRepository(db).GetPendingEvents(ctx, 10)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestPostgreSQLOutboxEventRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	event := &domain.OutboxEvent{ID: uuid.Must(uuid.NewV7()), Status: domain.OutboxEventStatusPending}
	event.MarkProcessed(testTime)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE outbox_events`)).
		WithArgs("processed", 0, nil, testTime, testTime, event.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewPostgreSQLOutboxEventRepository(db).Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository(t *testing.T) {
	ctx := context.Background()
	event, err := domain.NewOutboxEvent("intent.expired", map[string]string{"intent_id": "x"}, testTime)
	require.NoError(t, err)
	id, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO outbox_events`)).
			WithArgs(id, "intent.expired", `{"intent_id":"x"}`, "pending", 0, nil, nil, testTime, testTime).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLOutboxEventRepository(db).Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetPendingEvents", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE SKIP LOCKED`)).
			WithArgs("pending", 5).
			WillReturnRows(sqlmock.NewRows(outboxColumns).
				AddRow(id, "intent.expired", `{}`, "pending", 1, "boom", nil, testTime, testTime))

		events, err := NewMySQLOutboxEventRepository(db).GetPendingEvents(ctx, 5)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		require.NotNil(t, events[0].LastError)
		assert.Equal(t, "boom", *events[0].LastError)
	})

	t.Run("Update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE outbox_events`)).
			WithArgs("pending", 0, nil, nil, testTime, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLOutboxEventRepository(db).Update(ctx, event))
	})
}
