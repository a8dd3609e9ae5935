package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/ports"
	"github.com/photogram/photogram-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ReactionApplier performs a single like/save mutation.
type ReactionApplier interface {
	ApplyReaction(ctx context.Context, in ports.ReactionInput) error
}

// Dispatcher routes reactions to a fixed set of workers using consistent
// hashing on the (post, user) pair, so a like followed by an unlike for the
// same pair reaches the store in that order.
type Dispatcher struct {
	workers []chan ports.ReactionInput
	applier ReactionApplier
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, applier ReactionApplier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ReactionInput, numWorkers),
		applier: applier,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ReactionInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends a reaction to the worker responsible for its pair.
// The call blocks once that worker's buffer is full.
func (d *Dispatcher) Enqueue(in ports.ReactionInput) {
	idx := d.shardIndex(in.PostID + ":" + in.UserID)
	d.workers[idx] <- in
	metrics.ReactionQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a pair key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ReactionInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.ReactionQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.applier.ApplyReaction(ctx, in); err != nil {
				metrics.ReactionsTotal.WithLabelValues(in.Kind, in.Action, "error").Inc()
				d.log.Error().Err(err).
					Str("post_id", in.PostID).
					Str("user_id", in.UserID).
					Str("kind", in.Kind).
					Str("action", in.Action).
					Int("worker_id", id).
					Msg("reaction failed")
				continue
			}
			metrics.ReactionsTotal.WithLabelValues(in.Kind, in.Action, "ok").Inc()
		}
	}
}
