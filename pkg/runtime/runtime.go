// Package runtime wires the decoder's three cooperating OS threads (§5):
// the IQ source's own producer thread, a DSP thread consuming the IQ ring
// and producing symbols/frames, and a control thread driving the trunking
// state machine and remote commands. A global atomic exit flag unblocks
// all three within the suspension points §5 names.
package runtime

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/iq"
	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/dbehnke/trunkcore/pkg/ringbuf"
)

// Command is a bounded-queue instruction for the control thread (§5:
// "the control thread may block on its own command queue").
type Command struct {
	Kind string // "retune", "set_gain", "set_ppm", ...
	Arg  int64
}

// DSPStage is the collaborator the DSP thread drives once per IQ block:
// symbol extraction, sync, and per-protocol framing (§4.1-§4.4). Kept as
// an injected interface so Supervisor stays free of any one protocol's
// internals.
type DSPStage interface {
	ProcessBlock(samples []iq.Sample) error
	Reset()
}

// ControlStage is the collaborator the control thread drives once per
// command or tick: the trunking SM and remote-control command execution
// (§4.5, §6).
type ControlStage interface {
	Dispatch(cmd Command, source iq.Source) error
	Tick()
}

// Supervisor owns the three-thread pipeline: it does not itself decode
// anything, only schedules the IQ ring, the DSP stage, and the control
// stage against a shared exit flag and config snapshot.
type Supervisor struct {
	source  iq.Source
	dsp     DSPStage
	control ControlStage
	log     *logger.Logger

	ring     *ringbuf.Ring[iq.Sample]
	commands chan Command

	exitFlag atomic.Bool
}

// New builds a Supervisor. ringCapacity sizes the IQ ring (§3: "power-of-
// two length"); commandQueueLen bounds the control thread's command
// queue.
func New(source iq.Source, dsp DSPStage, control ControlStage, log *logger.Logger, ringCapacity, commandQueueLen int) *Supervisor {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}
	return &Supervisor{
		source:   source,
		dsp:      dsp,
		control:  control,
		log:      log.WithComponent("runtime"),
		ring:     ringbuf.NewRing[iq.Sample](ringCapacity),
		commands: make(chan Command, commandQueueLen),
	}
}

// Enqueue submits a command to the control thread, dropping it if the
// queue is full rather than blocking the caller.
func (s *Supervisor) Enqueue(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		s.log.Warn("command queue full, dropping command", logger.String("kind", cmd.Kind))
		return false
	}
}

// RequestExit sets the global exit flag; every thread observes it within
// its next suspension-point check (§5: "unblocks all condition-variable
// waits within <= 100 ms").
func (s *Supervisor) RequestExit() {
	s.exitFlag.Store(true)
}

// Run starts the DSP and control threads (the IQ thread is the source's
// own internal producer, started here via StartAsync) and blocks until
// ctx is cancelled, RequestExit is called, or a thread returns an error.
func (s *Supervisor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.source.StartAsync(gctx, s.ring, 4096)
	})

	g.Go(func() error {
		return s.runDSPThread(gctx)
	})

	g.Go(func() error {
		return s.runControlThread(gctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if s.exitFlag.Load() {
					cancel()
					return nil
				}
			}
		}
	})

	return g.Wait()
}

func (s *Supervisor) runDSPThread(ctx context.Context) error {
	const blockSize = 1024
	block := make([]iq.Sample, 0, blockSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.exitFlag.Load() {
			return nil
		}

		v, ok := s.ring.Pop()
		if !ok {
			// pkg/ringbuf exposes no blocking pop (condition-variable wait
			// per §5); back off briefly instead of a hard spin.
			time.Sleep(time.Millisecond)
			continue
		}
		block = append(block, v)
		if len(block) < blockSize {
			continue
		}

		if err := s.dsp.ProcessBlock(block); err != nil {
			s.log.Error("DSP block processing error", logger.Error(err))
		}
		block = block[:0]
	}
}

// controlTickInterval paces the trunking SM's periodic tick() (hangtime/
// eval-window/candidate-cooldown checks); it does not gate command
// dispatch, which reacts to the command channel immediately.
const controlTickInterval = 50 * time.Millisecond

func (s *Supervisor) runControlThread(ctx context.Context) error {
	ticker := time.NewTicker(controlTickInterval)
	defer ticker.Stop()

	for {
		if s.exitFlag.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-s.commands:
			if err := s.control.Dispatch(cmd, s.source); err != nil {
				s.log.Error("control command failed", logger.String("kind", cmd.Kind), logger.Error(err))
			}
		case <-ticker.C:
			s.control.Tick()
		}
	}
}

// ApplyConfig publishes a new RuntimeConfig snapshot for all threads to
// pick up (§5: "the config snapshot is updated by copy-on-write").
func (s *Supervisor) ApplyConfig(cfg *config.RuntimeConfig) {
	config.ApplyConfig(cfg)
	s.dsp.Reset()
}
