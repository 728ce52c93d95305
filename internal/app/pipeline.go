package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultQueueSize is the number of frames that may wait for the pipeline.
const DefaultQueueSize = 64

// Recorder persists the input the pipeline feeds to the engine.
type Recorder interface {
	RecordFrame(Frame) error
	RecordCommand(Command) error
	Flush() error
}

// PipelineConfig holds configuration options for the pipeline.
type PipelineConfig struct {
	// FrameRate is the tick rate. Zero means every submitted frame is ticked
	// as soon as it arrives, using its own DT.
	FrameRate int
	QueueSize int
	Logger    *zap.Logger
	Recorder  Recorder
}

type call struct {
	fn   func(*Engine) error
	done chan error
}

// Pipeline owns the engine and serializes every access to it on the
// goroutine running Run. Other goroutines submit frames and commands.
type Pipeline struct {
	engine   *Engine
	rate     int
	log      *zap.Logger
	recorder Recorder

	frames chan Frame
	calls  chan call

	mu        sync.RWMutex
	listeners []Listener
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine, cfg PipelineConfig) *Pipeline {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	p := &Pipeline{
		engine:   engine,
		rate:     cfg.FrameRate,
		log:      cfg.Logger,
		recorder: cfg.Recorder,
		frames:   make(chan Frame, cfg.QueueSize),
		calls:    make(chan call),
	}
	engine.Subscribe(p.dispatch)
	return p
}

// Subscribe registers a listener for engine events. Listeners run on the
// pipeline goroutine and must not block.
func (p *Pipeline) Subscribe(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

func (p *Pipeline) dispatch(ev Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, l := range p.listeners {
		l(ev)
	}
}

// Submit queues a frame without blocking. It returns false and drops the
// frame when the queue is full.
func (p *Pipeline) Submit(f Frame) bool {
	select {
	case p.frames <- f:
		return true
	default:
		p.log.Warn("frame dropped, queue full")
		return false
	}
}

// Command runs c on the engine and waits for the result.
func (p *Pipeline) Command(ctx context.Context, c Command) error {
	return p.Do(ctx, func(e *Engine) error {
		p.record(func(r Recorder) error { return r.RecordCommand(c) })
		return e.Command(c)
	})
}

// Do runs fn on the pipeline goroutine and waits for it to return.
func (p *Pipeline) Do(ctx context.Context, fn func(*Engine) error) error {
	c := call{fn: fn, done: make(chan error, 1)}
	select {
	case p.calls <- c:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-c.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks the engine until ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	defer p.flush()

	if p.rate <= 0 {
		p.log.Info("pipeline started", zap.String("clock", "driven"))
		return p.runDriven(ctx)
	}

	interval := time.Second / time.Duration(p.rate)
	dt := 1 / float64(p.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.log.Info("pipeline started",
		zap.String("clock", "ticker"),
		zap.Int("frame_rate", p.rate),
	)

	// pending collects input between ticks. Hands hold their latest value,
	// events accumulate until the next tick consumes them.
	var pending Frame
	for {
		select {
		case <-ctx.Done():
			p.log.Info("pipeline stopped")
			return nil
		case f := <-p.frames:
			merge(&pending, f)
		case c := <-p.calls:
			c.done <- c.fn(p.engine)
		case <-ticker.C:
			f := pending
			f.DT = dt
			p.tick(f)
			pending.Taps = nil
			pending.Scroll = 0
			pending.Release = false
		}
	}
}

func (p *Pipeline) runDriven(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.log.Info("pipeline stopped")
			return nil
		case f := <-p.frames:
			p.tick(f)
		case c := <-p.calls:
			c.done <- c.fn(p.engine)
		}
	}
}

func (p *Pipeline) tick(f Frame) {
	p.record(func(r Recorder) error { return r.RecordFrame(f) })
	p.engine.Tick(f)
}

func (p *Pipeline) record(fn func(Recorder) error) {
	if p.recorder == nil {
		return
	}
	if err := fn(p.recorder); err != nil {
		p.log.Warn("recording failed", zap.Error(err))
	}
}

func (p *Pipeline) flush() {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Flush(); err != nil {
		p.log.Error("flushing recording", zap.Error(err))
	}
}

func merge(dst *Frame, f Frame) {
	dst.Hands = f.Hands
	dst.Taps = append(dst.Taps, f.Taps...)
	dst.Scroll += f.Scroll
	dst.Release = dst.Release || f.Release
}
