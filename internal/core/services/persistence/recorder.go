// Package persistence batches station rate snapshots into the snapshot store
// off the request path.
package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"github.com/lcalzada-xor/wdash/internal/telemetry"
)

const (
	defaultBatchSize = 100
	defaultInterval  = 5 * time.Second
)

// Recorder handles background batch writing of rate snapshots to storage.
type Recorder struct {
	store     ports.SnapshotStore
	queue     chan domain.RateSnapshot
	batchSize int
	interval  time.Duration
	enabled   bool
	mu        sync.RWMutex
	done      chan struct{}
}

// NewRecorder creates a recorder with a queue of bufferSize snapshots.
func NewRecorder(store ports.SnapshotStore, bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Recorder{
		store:     store,
		queue:     make(chan domain.RateSnapshot, bufferSize),
		batchSize: defaultBatchSize,
		interval:  defaultInterval,
		enabled:   store != nil,
		done:      make(chan struct{}),
	}
}

// Record queues snapshots without blocking. When the queue is full the
// remainder is dropped and counted.
func (r *Recorder) Record(snapshots ...domain.RateSnapshot) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.enabled {
		return
	}
	for i, s := range snapshots {
		select {
		case r.queue <- s:
		default:
			dropped := len(snapshots) - i
			telemetry.SnapshotsDropped.Add(float64(dropped))
			slog.Warn("snapshot queue full, dropping", "dropped", dropped)
			return
		}
	}
}

// IsEnabled returns the current persistence status.
func (r *Recorder) IsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// SetEnabled toggles persistence. Enabling without a store has no effect.
func (r *Recorder) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled && r.store != nil
}

// Start runs the flush loop until ctx is cancelled; the remaining batch is
// flushed on the way out. Done is closed when the loop has exited.
func (r *Recorder) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	batch := make([]domain.RateSnapshot, 0, r.batchSize)

	go func() {
		defer close(r.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.drain(&batch)
				r.flush(context.Background(), batch)
				return
			case s := <-r.queue:
				batch = append(batch, s)
				if len(batch) >= r.batchSize {
					r.flush(ctx, batch)
					batch = batch[:0]
				}
			case <-ticker.C:
				if len(batch) > 0 {
					r.flush(ctx, batch)
					batch = batch[:0]
				}
			}
		}
	}()
}

// Done is closed once the flush loop started by Start has returned.
func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

func (r *Recorder) drain(batch *[]domain.RateSnapshot) {
	for {
		select {
		case s := <-r.queue:
			*batch = append(*batch, s)
		default:
			return
		}
	}
}

func (r *Recorder) flush(ctx context.Context, batch []domain.RateSnapshot) {
	if len(batch) == 0 || r.store == nil {
		return
	}
	out := make([]domain.RateSnapshot, len(batch))
	copy(out, batch)
	if err := r.store.SaveSnapshots(ctx, out); err != nil {
		slog.Error("failed to save rate snapshots", "count", len(out), "error", err)
		return
	}
	slog.Debug("rate snapshots flushed", "count", len(out))
}
