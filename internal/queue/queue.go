package queue

import (
	"errors"
	"sync"

	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// RecordQueue buffers parsed comparable-property batches between the
// ingest endpoint and the upsert workers. Each batch is delivered to
// exactly one receiver.
type RecordQueue struct {
	items  chan []*models.PropertyRecord
	closed bool
	mu     sync.RWMutex
	logger *logrus.Logger
}

func NewRecordQueue(bufferSize int, logger *logrus.Logger) *RecordQueue {
	return &RecordQueue{
		items:  make(chan []*models.PropertyRecord, bufferSize),
		logger: logger,
	}
}

// Push enqueues a batch without blocking. A full buffer rejects the batch
// so an ingest burst can never stall the HTTP handler.
func (q *RecordQueue) Push(records []*models.PropertyRecord) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- records:
		q.logger.WithField("batch_size", len(records)).Debug("Queued batch")
		return nil
	default:
		return ErrQueueFull
	}
}

// Batches exposes the receive side of the queue. The channel closes when
// the queue closes; buffered batches remain receivable until drained.
func (q *RecordQueue) Batches() <-chan []*models.PropertyRecord {
	return q.items
}

// Close stops the queue and prevents new batches from being added.
func (q *RecordQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.items)
	return nil
}

// Len returns the current number of buffered batches.
func (q *RecordQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *RecordQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
