package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/mist/internal/outbox/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockTxManager runs fn unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockEventProcessor struct {
	mock.Mock
}

func (m *MockEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func pendingEvent(eventType string) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   `{"pool_balance":1000}`,
		Status:    domain.OutboxEventStatusPending,
	}
}

func newRelay(
	maxRetries int,
) (*OutboxUseCase, *MockTxManager, *MockOutboxEventRepository, *MockEventProcessor) {
	txManager := &MockTxManager{}
	repo := &MockOutboxEventRepository{}
	processor := &MockEventProcessor{}
	uc := NewOutboxUseCase(
		Config{Interval: 10 * time.Millisecond, BatchSize: 10, MaxRetries: maxRetries},
		txManager,
		repo,
		processor,
		nil,
	)
	return uc, txManager, repo, processor
}

func TestOutboxUseCase_Start_ContextCancellation(t *testing.T) {
	uc, txManager, repo, _ := newRelay(3)
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetPendingEvents", mock.Anything, 10).Return([]*domain.OutboxEvent{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := uc.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOutboxUseCase_ProcessEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MarksProcessed", func(t *testing.T) {
		uc, txManager, repo, processor := newRelay(3)
		events := []*domain.OutboxEvent{
			pendingEvent("deposit.observed"),
			pendingEvent("settlement.completed"),
		}

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", ctx, 10).Return(events, nil)
		processor.On("Process", ctx, mock.Anything).Return(nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		require.NoError(t, uc.ProcessEvents(ctx))
		for _, event := range events {
			assert.Equal(t, domain.OutboxEventStatusProcessed, event.Status)
			assert.NotNil(t, event.ProcessedAt)
		}
		repo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("NoEvents", func(t *testing.T) {
		uc, txManager, repo, processor := newRelay(3)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{}, nil)

		require.NoError(t, uc.ProcessEvents(ctx))
		processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	})

	t.Run("GetPendingError", func(t *testing.T) {
		uc, txManager, repo, _ := newRelay(3)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", ctx, 10).Return(nil, errors.New("database error"))

		assert.EqualError(t, uc.ProcessEvents(ctx), "database error")
	})

	t.Run("ProcessorError_KeepsPendingBelowMaxRetries", func(t *testing.T) {
		uc, txManager, repo, processor := newRelay(3)
		event := pendingEvent("intent.observed")

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil)
		processor.On("Process", ctx, event).Return(errors.New("relay failed"))
		repo.On("Update", ctx, event).Return(nil)

		require.NoError(t, uc.ProcessEvents(ctx))
		assert.Equal(t, domain.OutboxEventStatusPending, event.Status)
		assert.Equal(t, 1, event.Retries)
		require.NotNil(t, event.LastError)
		assert.Equal(t, "relay failed", *event.LastError)
	})

	t.Run("ProcessorError_MarksFailedAtMaxRetries", func(t *testing.T) {
		uc, txManager, repo, processor := newRelay(3)
		event := pendingEvent("intent.observed")
		event.Retries = 2

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil)
		processor.On("Process", ctx, event).Return(errors.New("relay failed"))
		repo.On("Update", ctx, event).Return(nil)

		require.NoError(t, uc.ProcessEvents(ctx))
		assert.Equal(t, domain.OutboxEventStatusFailed, event.Status)
		assert.Equal(t, 3, event.Retries)
	})

	t.Run("UpdateError", func(t *testing.T) {
		uc, txManager, repo, processor := newRelay(3)
		event := pendingEvent("admin.pause_changed")

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil)
		processor.On("Process", ctx, event).Return(nil)
		repo.On("Update", ctx, event).Return(errors.New("update failed"))

		assert.EqualError(t, uc.ProcessEvents(ctx), "update failed")
	})

	t.Run("TxError", func(t *testing.T) {
		uc, txManager, repo, _ := newRelay(3)
		txManager.On("WithTx", ctx, mock.Anything).Return(errors.New("begin failed"))

		assert.EqualError(t, uc.ProcessEvents(ctx), "begin failed")
		repo.AssertNotCalled(t, "GetPendingEvents", mock.Anything, mock.Anything)
	})
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		repo.On("Create", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
			return e.EventType == "pool.topped_up" &&
				e.Payload == `{"amount":5}` &&
				e.Status == domain.OutboxEventStatusPending
		})).Return(nil)

		err := NewPublisher(repo).Publish(ctx, "pool.topped_up", map[string]int{"amount": 5})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("EncodeError", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}

		err := NewPublisher(repo).Publish(ctx, "pool.topped_up", make(chan int))
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		err := NewPublisher(repo).Publish(ctx, "pool.topped_up", struct{}{})
		assert.EqualError(t, err, "insert failed")
	})
}

func TestLedgerEventProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var buf bytes.Buffer
		processor := NewLedgerEventProcessor(slog.New(slog.NewJSONHandler(&buf, nil)))

		err := processor.Process(ctx, pendingEvent("deposit.observed"))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"event_type":"deposit.observed"`)
		assert.Contains(t, buf.String(), `"pool_balance":1000`)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		processor := NewLedgerEventProcessor(nil)
		event := pendingEvent("deposit.observed")
		event.Payload = "{"

		assert.Error(t, processor.Process(ctx, event))
	})
}
