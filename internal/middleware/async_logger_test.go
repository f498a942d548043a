package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger(t *testing.T) {
	t.Run("nil audit service returns nil", func(t *testing.T) {
		al := NewAsyncLogger(nil, DefaultAsyncLoggerConfig())
		assert.Nil(t, al)
		assert.False(t, al.Log(&model.AuditEvent{}))
		al.Stop()
	})

	t.Run("zero workers and batch size are raised to one", func(t *testing.T) {
		svc := &fakeAuditService{}
		al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 4, WriteTimeout: time.Second})
		require.NotNil(t, al)
		assert.Equal(t, 1, al.batchSize)

		assert.True(t, al.Log(&model.AuditEvent{Action: model.ActionQuote}))
		al.Stop()
		assert.Equal(t, 1, svc.stored())
	})
}

func TestAsyncLogger_Log(t *testing.T) {
	t.Run("logs within buffer size", func(t *testing.T) {
		svc := &fakeAuditService{}
		al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 5, WriteTimeout: time.Second})

		enqueued := 0
		for i := 0; i < 5; i++ {
			if al.Log(&model.AuditEvent{Action: model.ActionQuote}) {
				enqueued++
			}
		}

		assert.Equal(t, 5, enqueued)
		al.Stop()
		assert.Equal(t, 5, svc.stored())
	})

	t.Run("events are dropped when buffer full", func(t *testing.T) {
		svc := &fakeAuditService{block: make(chan struct{})}
		al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 3, NumWorkers: 1, BatchSize: 1, WriteTimeout: time.Second})

		dropped := 0
		for i := 0; i < 10; i++ {
			if !al.Log(&model.AuditEvent{Action: model.ActionQuote}) {
				dropped++
			}
		}
		assert.Greater(t, dropped, 0)

		close(svc.block)
		al.Stop()

		enqueued, droppedStat, written, _ := al.Stats()
		assert.Equal(t, int64(dropped), droppedStat)
		assert.Equal(t, enqueued, written)
	})

	t.Run("nil event is rejected", func(t *testing.T) {
		al := NewAsyncLogger(&fakeAuditService{}, DefaultAsyncLoggerConfig())
		defer al.Stop()
		assert.False(t, al.Log(nil))
	})

	t.Run("log after stop is dropped", func(t *testing.T) {
		al := NewAsyncLogger(&fakeAuditService{}, DefaultAsyncLoggerConfig())
		al.Stop()

		assert.False(t, al.Log(&model.AuditEvent{}))
		_, dropped, _, _ := al.Stats()
		assert.Equal(t, int64(1), dropped)
	})
}

func TestAsyncLogger_Batches(t *testing.T) {
	svc := &fakeAuditService{block: make(chan struct{})}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 1, BatchSize: 10, WriteTimeout: time.Second})

	for i := 0; i < 21; i++ {
		require.True(t, al.Log(&model.AuditEvent{Action: model.ActionQuote}))
	}
	close(svc.block)
	al.Stop()

	assert.Equal(t, 21, svc.stored())
	assert.LessOrEqual(t, svc.batches, 4)
}

func TestAsyncLogger_ErrorHandling(t *testing.T) {
	svc := &fakeAuditService{err: errors.New("db error")}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 2, BatchSize: 1, WriteTimeout: time.Second})

	for i := 0; i < 3; i++ {
		al.Log(&model.AuditEvent{Action: model.ActionQuote})
	}
	al.Stop()

	_, _, written, errCount := al.Stats()
	assert.Equal(t, int64(0), written)
	assert.Equal(t, int64(3), errCount)
}

func TestAsyncLogger_StopDrainsAndExits(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := &fakeAuditService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 4, BatchSize: 3, WriteTimeout: time.Second})

	for i := 0; i < 10; i++ {
		al.Log(&model.AuditEvent{Action: model.ActionQuote})
	}
	al.Stop()
	al.Stop()

	_, _, written, _ := al.Stats()
	assert.Equal(t, int64(10), written)
	assert.Equal(t, 10, svc.stored())
}
