package queue

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamroster/employee-directory/internal/api/metrics"
	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Processor handles one promotion request.
type Processor interface {
	Process(ctx context.Context, req ports.PromotionRequest) error
}

// Dispatcher routes promotion requests to a fixed set of workers, sharding
// on the employee id so requests for the same employee are handled in order.
type Dispatcher struct {
	workers []chan ports.PromotionRequest
	service Processor
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service Processor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PromotionRequest, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PromotionRequest, channelBuffer)
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

// Enqueue hands a request to the worker responsible for its employee. It
// never blocks: a full worker channel yields domain.ErrQueueFull.
func (d *Dispatcher) Enqueue(req ports.PromotionRequest) error {
	idx := d.shardIndex(req.EmployeeID)
	select {
	case d.workers[idx] <- req:
		metrics.PromotionQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.PromotionsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrQueueFull
	}
}

// shardIndex maps an employee id deterministically to a worker index.
func (d *Dispatcher) shardIndex(employeeID int) int {
	idx := employeeID % len(d.workers)
	if idx < 0 {
		idx = -idx
	}
	return idx
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PromotionRequest) {
	defer d.wg.Done()
	depth := metrics.PromotionQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.service.Process(ctx, req); err != nil {
				metrics.PromotionsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Int("employee_id", req.EmployeeID).
					Int("worker_id", id).
					Msg("promotion processing failed")
				continue
			}
			metrics.PromotionsTotal.WithLabelValues("recorded").Inc()
		}
	}
}
