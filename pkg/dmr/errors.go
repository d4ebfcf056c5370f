package dmr

import "fmt"

func errTooShort(what string, want, got int) error {
	return fmt.Errorf("dmr: %s needs %d bits, got %d", what, want, got)
}

func errWrongFragment(what string, lcss LCSS) error {
	return fmt.Errorf("dmr: %s decode requires a single-fragment CACH, got LCSS=%d", what, lcss)
}
