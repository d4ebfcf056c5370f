package frame

// SyncFamily groups sync patterns by protocol family, used to drive the
// symbol layer's locality-biased correlator priority order (§4.2).
type SyncFamily int

const (
	FamilyNone SyncFamily = iota
	FamilyP25P1
	FamilyP25P2
	FamilyX2TDMA
	FamilyDSTAR
	FamilyM17
	FamilyDMR
	FamilyEDACS
	FamilyDPMR
	FamilyNXDN
	FamilyYSF
	FamilyGeneric
)

// Polarity is the sign convention a sync pattern was trained against;
// receivers must try both since the discriminator output can invert.
type Polarity int

const (
	PolarityPositive Polarity = iota
	PolarityNegative
)

// SyncType is one entry of the ~40-pattern sync registry of §6: a named
// sync pattern tagged with its protocol family and polarity. IDs are
// wire-visible through logs and state dumps and must never be renumbered.
type SyncType struct {
	ID       int
	Name     string
	Family   SyncFamily
	Polarity Polarity
}

// SyncRegistry is the full ordered list of named sync patterns, IDs fixed
// per §6's sync-type table (a design-level subset there; the full table
// below assigns IDs 0..40, the M17 packet/preamble IDs 86, 87, 98 and 99,
// and the sentinel -1 "none").
var SyncRegistry = []SyncType{
	{0, "P25P1", FamilyP25P1, PolarityPositive},
	{1, "P25P1_INV", FamilyP25P1, PolarityNegative},
	{2, "X2TDMA_DATA", FamilyX2TDMA, PolarityPositive},
	{3, "X2TDMA_DATA_INV", FamilyX2TDMA, PolarityNegative},
	{4, "X2TDMA_VOICE", FamilyX2TDMA, PolarityPositive},
	{5, "X2TDMA_VOICE_INV", FamilyX2TDMA, PolarityNegative},
	{6, "DSTAR_VOICE", FamilyDSTAR, PolarityPositive},
	{7, "DSTAR_VOICE_INV", FamilyDSTAR, PolarityNegative},
	{8, "M17_STREAM", FamilyM17, PolarityPositive},
	{9, "M17_STREAM_INV", FamilyM17, PolarityNegative},
	{10, "DMR_BS", FamilyDMR, PolarityPositive},
	{11, "DMR_BS_INV", FamilyDMR, PolarityNegative},
	{12, "DMR_MS", FamilyDMR, PolarityPositive},
	{13, "DMR_MS_INV", FamilyDMR, PolarityNegative},
	{14, "PROVOICE", FamilyEDACS, PolarityPositive},
	{15, "PROVOICE_INV", FamilyEDACS, PolarityNegative},
	{16, "M17_LSF", FamilyM17, PolarityPositive},
	{17, "M17_LSF_INV", FamilyM17, PolarityNegative},
	{18, "DSTAR_HEADER", FamilyDSTAR, PolarityPositive},
	{19, "DSTAR_HEADER_INV", FamilyDSTAR, PolarityNegative},
	{20, "DPMR_FS1", FamilyDPMR, PolarityPositive},
	{21, "DPMR_FS1_INV", FamilyDPMR, PolarityNegative},
	{22, "DPMR_FS2", FamilyDPMR, PolarityPositive},
	{23, "DPMR_FS2_INV", FamilyDPMR, PolarityNegative},
	{24, "DPMR_FS3", FamilyDPMR, PolarityPositive},
	{25, "DPMR_FS3_INV", FamilyDPMR, PolarityNegative},
	{26, "DPMR_FS4", FamilyDPMR, PolarityPositive},
	{27, "DPMR_FS4_INV", FamilyDPMR, PolarityNegative},
	{28, "NXDN", FamilyNXDN, PolarityPositive},
	{29, "NXDN_INV", FamilyNXDN, PolarityNegative},
	{30, "YSF", FamilyYSF, PolarityPositive},
	{31, "YSF_INV", FamilyYSF, PolarityNegative},
	{32, "DMR_RC", FamilyDMR, PolarityPositive},
	{33, "DMR_RC_INV", FamilyDMR, PolarityNegative},
	{34, "DMR_RESERVED", FamilyDMR, PolarityPositive},
	{35, "P25P2", FamilyP25P2, PolarityPositive},
	{36, "P25P2_INV", FamilyP25P2, PolarityNegative},
	{37, "EDACS", FamilyEDACS, PolarityPositive},
	{38, "EDACS_INV", FamilyEDACS, PolarityNegative},
	{39, "ANALOG", FamilyGeneric, PolarityPositive},
	{40, "DIGITAL", FamilyGeneric, PolarityPositive},
	{86, "M17_PACKET", FamilyM17, PolarityPositive},
	{87, "M17_PACKET_INV", FamilyM17, PolarityNegative},
	{98, "M17_PREAMBLE", FamilyM17, PolarityPositive},
	{99, "M17_PREAMBLE_INV", FamilyM17, PolarityNegative},
	{-1, "NONE", FamilyNone, PolarityPositive},
}

var (
	syncByID     = map[int]SyncType{}
	syncByFamily = map[SyncFamily][]SyncType{}
)

func init() {
	for _, s := range SyncRegistry {
		syncByID[s.ID] = s
		syncByFamily[s.Family] = append(syncByFamily[s.Family], s)
	}
}

// SyncByID looks up a sync pattern by its fixed wire-visible ID.
func SyncByID(id int) (SyncType, bool) {
	s, ok := syncByID[id]
	return s, ok
}

// SyncsForFamily returns every sync pattern (both polarities) belonging to
// a protocol family, forming the bidirectional family->sync-list map
// required by spec's sync-identity data model.
func SyncsForFamily(family SyncFamily) []SyncType {
	return syncByFamily[family]
}
