package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"alcyxob/fittrack/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Deferred task statuses, used as the metrics "status" label.
const (
	StatusDone      = "done"
	StatusFailed    = "failed"
	StatusPanicked  = "panicked"
	StatusDiscarded = "discarded"
)

const (
	defaultPoolSize    = 4
	defaultTaskTimeout = 30 * time.Second
)

var ErrStopped = errors.New("executor stopped")

// Task is a unit of deferred work. The context it receives is derived from
// the executor, never from the request that scheduled it.
type Task func(ctx context.Context) error

type Config struct {
	PoolSize    int
	TaskTimeout time.Duration
}

type job struct {
	id   string
	name string
	task Task
}

// Executor runs tasks after a delay on a fixed pool of goroutines. Tasks
// are fire-and-forget: no retry, failures are logged and dropped.
type Executor struct {
	base    context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	metrics *metrics.Manager

	queue chan job
	quit  chan struct{}

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool

	// firing tracks timer callbacks handing a job to the pool
	firing  sync.WaitGroup
	workers sync.WaitGroup
}

func NewExecutor(ctx context.Context, cfg Config, m *metrics.Manager) *Executor {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = defaultTaskTimeout
	}

	base, cancel := context.WithCancel(ctx)
	e := &Executor{
		base:    base,
		cancel:  cancel,
		timeout: cfg.TaskTimeout,
		metrics: m,
		queue:   make(chan job, cfg.PoolSize*16),
		quit:    make(chan struct{}),
		timers:  make(map[string]*time.Timer),
	}

	e.workers.Add(cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		go e.loop()
	}
	return e
}

// Schedule arms a timer that queues task once delay has elapsed. It returns
// the task ID used in logs.
func (e *Executor) Schedule(delay time.Duration, name string, task Task) (string, error) {
	if task == nil {
		return "", errors.New("nil task")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return "", ErrStopped
	}

	j := job{id: uuid.NewString(), name: name, task: task}
	e.timers[j.id] = time.AfterFunc(delay, func() { e.fire(j) })

	log.WithFields(log.Fields{
		"task_id": j.id,
		"task":    name,
		"delay":   delay.String(),
	}).Debug("deferred task scheduled")
	return j.id, nil
}

func (e *Executor) fire(j job) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	delete(e.timers, j.id)
	e.firing.Add(1)
	e.mu.Unlock()
	defer e.firing.Done()

	select {
	case e.queue <- j:
	case <-e.quit:
		e.metrics.DeferredTask(j.name, StatusDiscarded)
	}
}

func (e *Executor) loop() {
	defer e.workers.Done()
	for {
		select {
		case j := <-e.queue:
			e.run(j)
		case <-e.quit:
			return
		}
	}
}

func (e *Executor) run(j job) {
	logger := log.WithFields(log.Fields{"task_id": j.id, "task": j.name})

	ctx, cancel := context.WithTimeout(e.base, e.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("deferred task panicked: %v", r)
			e.metrics.DeferredTask(j.name, StatusPanicked)
		}
	}()

	if err := j.task(ctx); err != nil {
		logger.Warnf("deferred task failed: %s", err)
		e.metrics.DeferredTask(j.name, StatusFailed)
		return
	}
	logger.Debug("deferred task done")
	e.metrics.DeferredTask(j.name, StatusDone)
}

// Pending is the number of armed timers that have not fired yet.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// Stop discards pending timers and queued jobs, then waits for running
// tasks. Calling it more than once is a no-op.
func (e *Executor) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	discarded := 0
	for id, t := range e.timers {
		if t.Stop() {
			discarded++
		}
		delete(e.timers, id)
	}
	e.mu.Unlock()

	close(e.quit)
	e.firing.Wait()
	e.workers.Wait()
	e.cancel()

	if discarded > 0 {
		log.Infof("executor stopped, %d pending task(s) discarded", discarded)
	}
}
