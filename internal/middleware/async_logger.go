package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/logger"
	"github.com/guttosm/print-quote-service/internal/service"
)

// AsyncLoggerConfig holds configuration for the async audit logger.
type AsyncLoggerConfig struct {
	// BufferSize is the size of the event channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing events.
	NumWorkers int
	// BatchSize is the maximum number of events written in one call.
	BatchSize int
	// WriteTimeout is the timeout for writing a batch to the audit store.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		BatchSize:    50,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLogger writes audit events through a bounded worker pool. Events
// that do not fit in the buffer are dropped; request handling never waits on
// the audit store.
type AsyncLogger struct {
	auditService service.AuditService
	eventCh      chan *model.AuditEvent
	wg           sync.WaitGroup
	stopCh       chan struct{}
	stopOnce     sync.Once
	batchSize    int
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

var _ service.AuditRecorder = (*AsyncLogger)(nil)

// NewAsyncLogger creates a new async logger. It returns nil when
// auditService is nil.
func NewAsyncLogger(auditService service.AuditService, cfg AsyncLoggerConfig) *AsyncLogger {
	if auditService == nil {
		return nil
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}

	al := &AsyncLogger{
		auditService: auditService,
		eventCh:      make(chan *model.AuditEvent, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		batchSize:    cfg.BatchSize,
		writeTimeout: cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}

	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	batch := make([]*model.AuditEvent, 0, al.batchSize)
	for {
		select {
		case event := <-al.eventCh:
			batch = append(batch[:0], event)
			batch = al.fill(batch)
			al.write(batch)
		case <-al.stopCh:
			for {
				batch = al.fill(batch[:0])
				if len(batch) == 0 {
					return
				}
				al.write(batch)
			}
		}
	}
}

// fill appends queued events to batch without blocking.
func (al *AsyncLogger) fill(batch []*model.AuditEvent) []*model.AuditEvent {
	for len(batch) < al.batchSize {
		select {
		case event := <-al.eventCh:
			batch = append(batch, event)
		default:
			return batch
		}
	}
	return batch
}

func (al *AsyncLogger) write(batch []*model.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = al.auditService.Record(ctx, batch[0])
	} else {
		err = al.auditService.RecordMany(ctx, batch)
	}
	if err != nil {
		atomic.AddInt64(&al.errors, int64(len(batch)))
		log := logger.Logger()
		log.Warn().Err(err).Int("events", len(batch)).Msg("Failed to write audit events")
		return
	}
	atomic.AddInt64(&al.written, int64(len(batch)))
}

// Log enqueues an audit event. It returns false if the buffer is full or
// the logger is stopped.
func (al *AsyncLogger) Log(event *model.AuditEvent) bool {
	if al == nil || event == nil {
		return false
	}
	select {
	case <-al.stopCh:
		atomic.AddInt64(&al.dropped, 1)
		return false
	default:
	}

	select {
	case al.eventCh <- event:
		atomic.AddInt64(&al.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&al.dropped, 1)
		return false
	}
}

// Stop drains pending events and waits for the workers to exit. It is safe
// to call more than once.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

// Stats returns current async logger statistics.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	return atomic.LoadInt64(&al.enqueued),
		atomic.LoadInt64(&al.dropped),
		atomic.LoadInt64(&al.written),
		atomic.LoadInt64(&al.errors)
}
