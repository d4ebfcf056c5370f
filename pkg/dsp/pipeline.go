// Package dsp implements the complex-baseband signal-processing cascade that
// turns a raw IQ sample stream into a symbol stream: decimation, AGC, IQ
// balance, DC blocking, frequency and timing recovery, carrier recovery, and
// matched filtering/equalisation. Each stage is its own value-typed struct
// with Process/Reset methods, grounded on the differential/Costas/PSK
// demodulation shape found in the itohio-EasyRobot and ka9q_ubersdr DSP
// fragments, composed the way the teacher composes its own stateless
// protocol helpers: no globals, state owned by the caller.
package dsp

import "fmt"

// Mode selects which stages the pipeline actually exercises.
type Mode int

const (
	ModePassthrough Mode = iota
	ModeFM                // C4FM/FSK family: DMR, NXDN, D-STAR, YSF, dPMR, M17
	ModeCQPSK             // P25 Phase 2 H-CPM/CQPSK
)

func (m Mode) String() string {
	switch m {
	case ModeFM:
		return "fm"
	case ModeCQPSK:
		return "cqpsk"
	default:
		return "passthrough"
	}
}

// Config is the immutable set of parameters the pipeline is built from.
// A running Pipeline never mutates its own Config; ApplyConfig swaps in a
// freshly-validated one wholesale.
type Config struct {
	Mode Mode

	InRate, OutRate float64
	Bandwidth       float64

	BlankerThreshold float64
	BlankerWindow    int

	DCBlockShift int // k in [6,15]

	AGCTargetRMS  float64
	AGCAlphaUpQ15 int
	AGCAlphaDnQ15 int

	EqualizerStrength EqStrength

	SamplesPerSymbol int // used by FLL band-edge filter design

	RRCAlphaPercent int // [1,100], 0 disables the optional RRC stage
	RRCSpanSymbols  int // [3,16]

	LMSTaps         int // [3,21]
	LMSMuQ15        int
	LMSUpdateStride int
}

// Stage failures identify which stage and parameter rejected init.
type StageError struct {
	Stage string
	Param string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("dsp: stage %q rejected parameter %q: %v", e.Stage, e.Param, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Metrics is a point-in-time snapshot of pipeline health, safe to copy.
type Metrics struct {
	BlankerAccepts, BlankerRejects int64
	CarrierState                  CarrierState
	ResidualCFO                   float64
	MeanCostasError               float64
	SNRdB                         float64
	GardnerMu                     float64
	GardnerOmega                  float64
}

// Pipeline owns every stage and composes them in the fixed §4.1 order.
type Pipeline struct {
	cfg Config

	blanker     ImpulseBlanker
	decimator   DecimationCascade
	dcBlock     DCBlocker
	iqBalance   IQBalancer
	agc         AGC
	cma         CMAEqualizer
	fll         FLL
	gardner     GardnerTED
	phasor      DifferentialPhasor
	costas      CostasLoop
	matched     MatchedFilter
	rrc         RRCFilter
	rrcEnabled  bool
	lms         CQPSKEqualizer
	disc        Discriminator
	deemph      DeemphasisFilter
	postDC      DCBlocker
	audioLPF    AudioLPF
	lock        CarrierLockSM
	lastFM      complex128
}

// Init fixes the cascade. A stage that cannot initialise (e.g. an RRC span
// out of range) fails the whole pipeline init with an error identifying the
// stage and offending parameter.
func Init(cfg Config) (*Pipeline, error) {
	if cfg.InRate <= 0 || cfg.OutRate <= 0 || cfg.OutRate > cfg.InRate {
		return nil, &StageError{Stage: "init", Param: "in_rate/out_rate", Err: fmt.Errorf("invalid rate pair %v/%v", cfg.InRate, cfg.OutRate)}
	}
	decim := int(cfg.InRate / cfg.OutRate)
	if decim < 1 || float64(decim)*cfg.OutRate != cfg.InRate {
		return nil, &StageError{Stage: "decimation_cascade", Param: "in_rate/out_rate", Err: fmt.Errorf("in_rate must be an integer multiple of out_rate")}
	}
	if cfg.DCBlockShift < 6 || cfg.DCBlockShift > 15 {
		return nil, &StageError{Stage: "dc_blocker", Param: "shift", Err: fmt.Errorf("shift %d out of [6,15]", cfg.DCBlockShift)}
	}
	if cfg.RRCAlphaPercent != 0 {
		if cfg.RRCAlphaPercent < 1 || cfg.RRCAlphaPercent > 100 {
			return nil, &StageError{Stage: "rrc_filter", Param: "alpha_percent", Err: fmt.Errorf("alpha_percent %d out of [1,100]", cfg.RRCAlphaPercent)}
		}
		if cfg.RRCSpanSymbols < 3 || cfg.RRCSpanSymbols > 16 {
			return nil, &StageError{Stage: "rrc_filter", Param: "span_syms", Err: fmt.Errorf("span_syms %d out of [3,16]", cfg.RRCSpanSymbols)}
		}
	}
	if cfg.Mode == ModeCQPSK {
		if cfg.LMSTaps < 3 || cfg.LMSTaps > 21 {
			return nil, &StageError{Stage: "cqpsk_equalizer", Param: "taps", Err: fmt.Errorf("taps %d out of [3,21]", cfg.LMSTaps)}
		}
		if cfg.SamplesPerSymbol < 1 {
			return nil, &StageError{Stage: "fll", Param: "samples_per_symbol", Err: fmt.Errorf("samples_per_symbol must be >=1")}
		}
	}

	p := &Pipeline{cfg: cfg}
	p.blanker = NewImpulseBlanker(cfg.BlankerThreshold, cfg.BlankerWindow)
	p.decimator = NewDecimationCascade(decim)
	p.dcBlock = NewDCBlocker(cfg.DCBlockShift)
	p.iqBalance = NewIQBalancer()
	p.agc = NewAGC(cfg.AGCTargetRMS, cfg.AGCAlphaUpQ15, cfg.AGCAlphaDnQ15)
	p.cma = NewCMAEqualizer(cfg.EqualizerStrength)
	if cfg.Mode == ModeCQPSK {
		p.fll = NewFLL(cfg.SamplesPerSymbol)
		p.lms = NewCQPSKEqualizer(cfg.LMSTaps, cfg.LMSMuQ15, cfg.LMSUpdateStride)
	}
	p.gardner = NewGardnerTED(float64(cfg.SamplesPerSymbol))
	p.costas = NewCostasLoop()
	p.matched = NewMatchedFilter()
	if cfg.RRCAlphaPercent != 0 {
		rrc, err := NewRRCFilter(cfg.RRCAlphaPercent, cfg.RRCSpanSymbols, cfg.SamplesPerSymbol)
		if err != nil {
			return nil, &StageError{Stage: "rrc_filter", Param: "design", Err: err}
		}
		p.rrc = rrc
		p.rrcEnabled = true
	}
	p.deemph = NewDeemphasisFilter(0x6000)
	p.postDC = NewDCBlocker(cfg.DCBlockShift)
	p.audioLPF = NewAudioLPF()
	p.lock = NewCarrierLockSM()
	return p, nil
}

// ProcessResult is the per-symbol output of one Process call, empty when
// the stage cascade didn't produce a new symbol on this input block.
type ProcessResult struct {
	HasSymbol bool
	Symbol    float64
	Lock      CarrierState
}

// Process runs one block of IQ samples through the fixed §4.1 stage order.
// Stages irrelevant to the configured Mode are no-ops.
func (p *Pipeline) Process(in []complex128) []ProcessResult {
	accepted, _, _ := p.blanker.Process(in)
	decimated := p.decimator.Process(accepted)
	for i := range decimated {
		decimated[i] = p.dcBlock.Process(decimated[i])
	}
	decimated = p.iqBalance.Process(decimated)

	var results []ProcessResult
	switch p.cfg.Mode {
	case ModeFM:
		for _, s := range decimated {
			agcd := p.agc.Process(s)
			smoothed := p.cma.Process(agcd)
			sym := p.disc.DiscriminateFM(smoothed, p.lastFM)
			p.lastFM = smoothed
			sym = p.deemph.Process(sym)
			sym = real(p.postDC.Process(complex(sym, 0)))
			sym = p.audioLPF.Process(sym)
			p.lock.Observe(0, 0, p.agc.SNRdB())
			results = append(results, ProcessResult{HasSymbol: true, Symbol: sym, Lock: p.lock.State()})
		}
	case ModeCQPSK:
		for _, s := range decimated {
			rotated := p.fll.Process(s)
			if ok, interp, mid := p.gardner.Step(rotated); ok {
				diff := p.phasor.Process(interp, mid)
				corrected := p.costas.Process(diff)
				filtered := p.matched.Process(corrected)
				if p.rrcEnabled {
					filtered = p.rrc.Process(filtered)
				}
				eq := p.lms.Process(filtered)
				sym := p.disc.DiscriminateCQPSK(eq)
				p.lock.Observe(p.fll.ResidualFreq(), p.costas.MeanError(), p.agc.SNRdB())
				results = append(results, ProcessResult{HasSymbol: true, Symbol: float64(sym), Lock: p.lock.State()})
			}
		}
	default:
		for _, s := range decimated {
			results = append(results, ProcessResult{HasSymbol: true, Symbol: real(s)})
		}
	}
	return results
}

// ApplyConfig swaps in a freshly-validated configuration wholesale by
// rebuilding every stage from cfg. Only the impulse-blanker statistics carry
// over; carrier, timing, equaliser and filter state restart from their
// initial values, including when cfg equals the current configuration.
func (p *Pipeline) ApplyConfig(cfg Config) error {
	fresh, err := Init(cfg)
	if err != nil {
		return err
	}
	carry := p.blanker
	*p = *fresh
	p.blanker = carry
	return nil
}

// ResetCarrier resets Costas, FLL, and CMA/LMS adaptation/warm-up — the set
// a retune must clear — without touching impulse-blanker statistics, which
// stay useful across retunes.
func (p *Pipeline) ResetCarrier() {
	p.costas.Reset()
	p.fll.Reset()
	p.cma.Reset()
	p.lms.Reset()
	p.iqBalance.Reset()
	p.lock.Reset()
}

// ResetTiming resets the Gardner timing-error detector's accumulator; its
// period estimate is kept.
func (p *Pipeline) ResetTiming() {
	p.gardner.Reset()
}

// ResetAll resets every stage, including impulse-blanker statistics.
func (p *Pipeline) ResetAll() {
	p.ResetCarrier()
	p.ResetTiming()
	p.blanker.Reset()
	p.dcBlock.Reset()
	p.postDC.Reset()
	p.agc.Reset()
	p.disc.Reset()
	p.deemph.Reset()
	p.audioLPF.Reset()
}

// SnapshotMetrics returns a point-in-time, copy-safe view of pipeline health.
func (p *Pipeline) SnapshotMetrics() Metrics {
	accepts, rejects := p.blanker.Stats()
	return Metrics{
		BlankerAccepts:   accepts,
		BlankerRejects:   rejects,
		CarrierState:     p.lock.State(),
		ResidualCFO:      p.fll.ResidualFreq(),
		MeanCostasError:  p.costas.MeanError(),
		SNRdB:            p.agc.SNRdB(),
		GardnerMu:        p.gardner.Mu(),
		GardnerOmega:     p.gardner.Omega(),
	}
}
