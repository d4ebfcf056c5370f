package dmr

import "github.com/dbehnke/trunkcore/pkg/symbol"

// ResampleWindowSymbols is the CACH-plus-message-prefix span re-digitized
// when a burst is found via an outer-only sync match, per §4.4.
const ResampleWindowSymbols = 66

// ResampleOnSync recalibrates slicer thresholds from the CACH+message
// prefix window following an outer-only sync correlation, so the framer
// re-digitizes that span with corrected thresholds instead of the blind
// ones used to first locate sync. Ties directly into pkg/symbol's
// OuterOnly warm-start calibration rather than needing new DSP code.
func ResampleOnSync(window []symbol.Symbol) (symbol.Thresholds, symbol.WarmStartResult) {
	if len(window) > ResampleWindowSymbols {
		window = window[:ResampleWindowSymbols]
	}
	return symbol.OuterOnly(window)
}

// ResampleOnCenterSync re-centers thresholds against a previously-known-good
// calibration (center-lock sync) rather than cold-starting, matching
// pkg/symbol's CenterOnly warm-start path.
func ResampleOnCenterSync(window []symbol.Symbol, prev symbol.Thresholds) (symbol.Thresholds, symbol.WarmStartResult) {
	if len(window) > ResampleWindowSymbols {
		window = window[:ResampleWindowSymbols]
	}
	return symbol.CenterOnly(window, prev)
}
