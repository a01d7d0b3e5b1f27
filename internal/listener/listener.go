package listener

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AttachKit/internal/arena"
	"github.com/GriffinCanCode/AttachKit/internal/channel"
	"github.com/GriffinCanCode/AttachKit/internal/logging"
	"github.com/GriffinCanCode/AttachKit/internal/monitoring"
	"github.com/GriffinCanCode/AttachKit/internal/wire"
)

// Status is the numeric result of an enqueue attempt, returned to the
// producer's calling context. Producers run in a constrained context and
// must not attempt recovery beyond reporting a non-zero status upward.
type Status int32

const (
	StatusOK                Status = 0
	StatusUnavailable       Status = 100
	StatusResourceExhausted Status = 101
	StatusIllegalArgument   Status = 102
	StatusInternalError     Status = 103
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusResourceExhausted:
		return "resource-exhausted"
	case StatusIllegalArgument:
		return "illegal-argument"
	case StatusInternalError:
		return "internal-error"
	default:
		return "unknown"
	}
}

// Config configures a Listener.
type Config struct {
	// Capacity bounds pending (not in-service) requests. Zero means
	// arena.DefaultCapacity.
	Capacity int
	// NamePrefix is the namespace every channel name must start with.
	NamePrefix string
	// ReadyRetries and ReadyWait bound how long a producer waits for the
	// listener to come up before giving up with StatusUnavailable.
	ReadyRetries int
	ReadyWait    time.Duration
}

func (c *Config) applyDefaults() {
	if c.Capacity <= 0 {
		c.Capacity = arena.DefaultCapacity
	}
	if c.ReadyRetries <= 0 {
		c.ReadyRetries = 10
	}
	if c.ReadyWait <= 0 {
		c.ReadyWait = time.Second
	}
}

// Stats reports the listener's queue and pool occupancy.
type Stats struct {
	Capacity   int `json:"capacity"`
	QueueDepth int `json:"queue_depth"`
	SlotsFree  int `json:"slots_free"`
}

// Listener owns the slot arena and bridges many concurrent producers to the
// single consumer goroutine. One mutex guards all arena mutation; a buffered
// channel is the counting semaphore whose length always equals the queue
// depth.
type Listener struct {
	cfg Config

	mu    sync.Mutex
	arena *arena.Arena
	sem   chan struct{}

	ready   atomic.Bool
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a listener. It starts not-ready: producers back off until the
// owner of the consumer loop calls SetReady.
func New(cfg Config) *Listener {
	cfg.applyDefaults()
	return &Listener{
		cfg:    cfg,
		arena:  arena.New(cfg.Capacity),
		sem:    make(chan struct{}, cfg.Capacity),
		logger: logging.NewNop(),
	}
}

// WithLogger attaches a logger.
func (l *Listener) WithLogger(logger *logging.Logger) *Listener {
	l.logger = logger
	return l
}

// WithMetrics attaches a metrics collector.
func (l *Listener) WithMetrics(m *monitoring.Metrics) *Listener {
	l.metrics = m
	return l
}

// SetReady marks the listener up. Called once by whoever starts the
// consumer loop.
func (l *Listener) SetReady() {
	l.ready.Store(true)
}

// IsReady reports whether the listener accepts enqueues without backoff.
func (l *Listener) IsReady() bool {
	return l.ready.Load()
}

// Stats returns the current queue and pool occupancy.
func (l *Listener) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		Capacity:   l.arena.Capacity(),
		QueueDepth: l.arena.QueueLen(),
		SlotsFree:  l.arena.FreeCount(),
	}
}

// EnqueueV1 submits a request whose command and arguments arrive inline.
// The reply channel is opened write-only at service time.
func (l *Listener) EnqueueV1(command, arg0, arg1, arg2, channelName string) Status {
	return l.enqueue(arena.V1, command, arg0, arg1, arg2, channelName)
}

// EnqueueV2 submits a request whose body the consumer reads from the channel
// itself; only the channel name crosses the enqueue boundary.
func (l *Listener) EnqueueV2(channelName string) Status {
	return l.enqueue(arena.V2, "", "", "", "", channelName)
}

func (l *Listener) enqueue(ver arena.Version, command, arg0, arg1, arg2, channelName string) Status {
	status := l.doEnqueue(ver, command, arg0, arg1, arg2, channelName)
	if l.metrics != nil {
		l.metrics.RecordEnqueue(status.String(), status == StatusOK)
		if status == StatusOK {
			l.publishQueueState()
		}
	}
	return status
}

func (l *Listener) doEnqueue(ver arena.Version, command, arg0, arg1, arg2, channelName string) Status {
	l.logger.Debug("enqueue",
		zap.String("version", ver.String()),
		zap.String("command", command),
		zap.String("channel", channelName),
	)

	// A producer may fire before the listener finishes starting; give it a
	// bounded grace period.
	for retries := 0; !l.ready.Load(); retries++ {
		if retries >= l.cfg.ReadyRetries {
			return StatusUnavailable
		}
		time.Sleep(l.cfg.ReadyWait)
	}

	// Validate everything before touching shared state. A rejected request
	// must mutate nothing and signal nothing.
	if len(command) > wire.MaxCommandLen ||
		len(arg0) > wire.MaxArgLen ||
		len(arg1) > wire.MaxArgLen ||
		len(arg2) > wire.MaxArgLen ||
		len(channelName) > wire.MaxChannelNameLen {
		return StatusIllegalArgument
	}
	if !strings.HasPrefix(channelName, l.cfg.NamePrefix) {
		return StatusIllegalArgument
	}

	l.mu.Lock()
	h, ok := l.arena.Checkout()
	if !ok {
		l.mu.Unlock()
		return StatusResourceExhausted
	}
	slot := l.arena.Slot(h)
	slot.Version = ver
	slot.Command = command
	slot.Args[0] = arg0
	slot.Args[1] = arg1
	slot.Args[2] = arg2
	slot.ChannelName = channelName
	l.arena.PushTail(h)
	l.mu.Unlock()

	// Signal exactly once per accepted request. The semaphore's capacity
	// equals the arena's, so a blocked send means the queue/semaphore
	// invariant is already broken and nothing can be trusted.
	select {
	case l.sem <- struct{}{}:
	default:
		panic("listener: semaphore overflow, queue invariant violated")
	}

	return StatusOK
}

// Dequeue blocks until a request is available and returns it as a fully
// decoded, channel-attached Operation. Per-request transport failures are
// logged and the request silently dropped; Dequeue keeps looping. The only
// error return is ctx cancellation.
func (l *Listener) Dequeue(ctx context.Context) (*Operation, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.sem:
		}

		l.mu.Lock()
		h, ok := l.arena.PopHead()
		if !ok {
			// The semaphore said there was work.
			l.mu.Unlock()
			panic("listener: semaphore signaled with empty queue")
		}
		slot := l.arena.Slot(h)
		ver := slot.Version
		command := slot.Command
		args := slot.Args
		name := slot.ChannelName
		// Recycle before servicing: capacity bounds pending requests, not
		// in-service ones, so a free slot opens up immediately.
		l.arena.Recycle(h)
		l.mu.Unlock()

		l.publishQueueState()
		if l.metrics != nil {
			l.metrics.RecordDequeue(ver.String())
		}

		// Everything below is blocking I/O and runs outside the lock.
		op := l.resolve(ver, command, args, name)
		if op != nil {
			return op, nil
		}
	}
}

// resolve performs version dispatch, returning nil when the request must be
// silently dropped.
func (l *Listener) resolve(ver arena.Version, command string, args [wire.MaxArgs]string, name string) *Operation {
	switch ver {
	case arena.V1:
		ch, err := channel.Open(name, channel.WriteOnly)
		if err != nil {
			l.logger.Error("channel open failed", zap.String("channel", name), zap.Error(err))
			if l.metrics != nil {
				l.metrics.RecordTransportFailure("open")
			}
			return nil
		}
		return newOperation(command, args, ch, l.logger)

	case arena.V2:
		ch, err := channel.Open(name, channel.ReadWrite)
		if err != nil {
			l.logger.Error("channel open failed", zap.String("channel", name), zap.Error(err))
			if l.metrics != nil {
				l.metrics.RecordTransportFailure("open")
			}
			return nil
		}
		req, err := wire.ReadRequest(ch)
		if err != nil {
			l.logger.Error("request decode failed", zap.String("channel", name), zap.Error(err))
			if l.metrics != nil {
				l.metrics.RecordTransportFailure("decode")
			}
			ch.Close()
			return nil
		}
		return newOperation(req.Command, req.Args, ch, l.logger)

	default:
		l.logger.Error("unsupported request version", zap.Uint8("version", uint8(ver)))
		if l.metrics != nil {
			l.metrics.RecordDrop()
		}
		return nil
	}
}

func (l *Listener) publishQueueState() {
	if l.metrics == nil {
		return
	}
	stats := l.Stats()
	l.metrics.SetQueueState(stats.QueueDepth, stats.SlotsFree)
}

func newOperation(command string, args [wire.MaxArgs]string, ch *channel.Channel, logger *logging.Logger) *Operation {
	return &Operation{
		id:     uuid.New().String(),
		name:   command,
		args:   args,
		ch:     ch,
		logger: logger,
	}
}
