package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/iq"
	"github.com/dbehnke/trunkcore/pkg/ringbuf"
)

type fakeSource struct {
	mu      sync.Mutex
	started bool
	stopped bool
}

func (f *fakeSource) SetFrequency(hz int64) error                  { return nil }
func (f *fakeSource) SetSampleRate(hz int) error                   { return nil }
func (f *fakeSource) SetGain(mode iq.GainMode, tenthDB int) error  { return nil }
func (f *fakeSource) SetPPM(ppm int) error                         { return nil }
func (f *fakeSource) SetDirectSampling(mode iq.DirectSampling) error { return nil }
func (f *fakeSource) SetOffsetTuning(enabled bool) error           { return nil }
func (f *fakeSource) SetTunerBandwidth(hz int) error               { return nil }
func (f *fakeSource) SetBiasTee(enabled bool) error                { return nil }
func (f *fakeSource) Mute(n int) error                             { return nil }
func (f *fakeSource) Close() error                                 { return nil }

func (f *fakeSource) StartAsync(ctx context.Context, ring *ringbuf.Ring[iq.Sample], bufLen int) error {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			ring.Push(iq.Sample{I: 1, Q: 1})
			time.Sleep(time.Microsecond)
		}
	}
}

func (f *fakeSource) StopAsync() error {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
	return nil
}

type fakeDSP struct {
	mu     sync.Mutex
	blocks int
	resets int
}

func (d *fakeDSP) ProcessBlock(samples []iq.Sample) error {
	d.mu.Lock()
	d.blocks++
	d.mu.Unlock()
	return nil
}

func (d *fakeDSP) Reset() {
	d.mu.Lock()
	d.resets++
	d.mu.Unlock()
}

type fakeControl struct {
	mu       sync.Mutex
	ticks    int
	dispatch []Command
}

func (c *fakeControl) Dispatch(cmd Command, source iq.Source) error {
	c.mu.Lock()
	c.dispatch = append(c.dispatch, cmd)
	c.mu.Unlock()
	return nil
}

func (c *fakeControl) Tick() {
	c.mu.Lock()
	c.ticks++
	c.mu.Unlock()
}

func TestSupervisor_RunProcessesBlocksAndTicksUntilExit(t *testing.T) {
	src := &fakeSource{}
	dsp := &fakeDSP{}
	ctl := &fakeControl{}

	sv := New(src, dsp, ctl, nil, 8192, 16)

	done := make(chan error, 1)
	go func() {
		done <- sv.Run(context.Background())
	}()

	deadline := time.After(2 * time.Second)
	for {
		dsp.mu.Lock()
		blocks := dsp.blocks
		dsp.mu.Unlock()
		if blocks > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a processed DSP block")
		case <-time.After(time.Millisecond):
		}
	}

	sv.RequestExit()

	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			t.Fatalf("Run returned unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after RequestExit")
	}
}

func TestSupervisor_EnqueueDispatchesToControlStage(t *testing.T) {
	src := &fakeSource{}
	dsp := &fakeDSP{}
	ctl := &fakeControl{}

	sv := New(src, dsp, ctl, nil, 1024, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sv.Run(ctx)
	}()

	if !sv.Enqueue(Command{Kind: "retune", Arg: 851125000}) {
		t.Fatal("Enqueue returned false on a non-full queue")
	}

	deadline := time.After(2 * time.Second)
	for {
		ctl.mu.Lock()
		n := len(ctl.dispatch)
		ctl.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for command dispatch")
		case <-time.After(time.Millisecond):
		}
	}

	ctl.mu.Lock()
	got := ctl.dispatch[0]
	ctl.mu.Unlock()
	if got.Kind != "retune" || got.Arg != 851125000 {
		t.Errorf("dispatch = %+v, want retune/851125000", got)
	}

	cancel()
	<-done
}

func TestSupervisor_EnqueueDropsOnFullQueue(t *testing.T) {
	src := &fakeSource{}
	dsp := &fakeDSP{}
	ctl := &fakeControl{}

	// No Run loop draining commands: the queue fills immediately.
	sv := New(src, dsp, ctl, nil, 64, 1)

	if !sv.Enqueue(Command{Kind: "a"}) {
		t.Fatal("first enqueue should succeed")
	}
	if sv.Enqueue(Command{Kind: "b"}) {
		t.Fatal("second enqueue should be dropped on a full queue")
	}
}

func TestSupervisor_ApplyConfigResetsDSP(t *testing.T) {
	src := &fakeSource{}
	dsp := &fakeDSP{}
	ctl := &fakeControl{}

	sv := New(src, dsp, ctl, nil, 64, 4)
	sv.ApplyConfig(&config.RuntimeConfig{})

	dsp.mu.Lock()
	resets := dsp.resets
	dsp.mu.Unlock()
	if resets != 1 {
		t.Errorf("dsp.resets = %d, want 1", resets)
	}
}
