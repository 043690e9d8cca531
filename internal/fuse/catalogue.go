package fuse

import "math"

// Policy selects how an accumulator cell combines repeated
// contributions for the same (topic, docno) pair. See spec.md
// section 4.1.
type Policy int

const (
	// PolicyAdd sums every contribution (CombSUM/CombANZ/CombMNZ,
	// Borda, ISR, logISR, RRF, RBC).
	PolicyAdd Policy = iota
	// PolicyLess keeps the minimum contribution seen (CombMIN).
	PolicyLess
	// PolicyGreater keeps the maximum contribution seen (CombMAX).
	PolicyGreater
	// PolicyList keeps every contribution in sorted order, for a
	// median computed on read (CombMED).
	PolicyList
)

// Fusion names one of the eleven fusion algorithms in the catalogue.
type Fusion int

const (
	CombSUM Fusion = iota
	CombANZ
	CombMNZ
	CombMIN
	CombMAX
	CombMED
	Borda
	ISR
	LogISR
	RRF
	RBC
)

// fusionNames must stay in sync with the Fusion constants above; it
// backs both String() and ParseFusion.
var fusionNames = [...]string{
	CombSUM: "combsum",
	CombANZ: "combanz",
	CombMNZ: "combmnz",
	CombMIN: "combmin",
	CombMAX: "combmax",
	CombMED: "combmed",
	Borda:   "borda",
	ISR:     "isr",
	LogISR:  "logisr",
	RRF:     "rrf",
	RBC:     "rbc",
}

func (f Fusion) String() string {
	if int(f) < 0 || int(f) >= len(fusionNames) {
		return "unknown"
	}
	return fusionNames[f]
}

// ParseFusion resolves a fusion name from the command line. Matching is
// case-sensitive lowercase, matching spec.md section 6's catalogue.
func ParseFusion(name string) (Fusion, bool) {
	for i, n := range fusionNames {
		if n == name {
			return Fusion(i), true
		}
	}
	return 0, false
}

// UsesScore reports whether the fusion consumes the input file's
// retrieval score (and therefore requires normalization) or only the
// entry's rank.
func (f Fusion) UsesScore() bool {
	switch f {
	case CombSUM, CombANZ, CombMNZ, CombMIN, CombMAX, CombMED:
		return true
	default:
		return false
	}
}

// Policy returns the accumulator reduction policy for this fusion, per
// the table in spec.md section 4.5.
func (f Fusion) Policy() Policy {
	switch f {
	case CombMIN:
		return PolicyLess
	case CombMAX:
		return PolicyGreater
	case CombMED:
		return PolicyList
	default:
		return PolicyAdd
	}
}

// contribution computes the per-entry contribution at 1-based rank r,
// given the entry's (already normalized, if applicable) score and the
// number of entries in the system's result list (systemSize), and the
// RRF constant k and RBC weight table w. Only the parameters relevant
// to the fusion are consulted.
func (f Fusion) contribution(rank int, score float64, systemSize int, rrfK int, weights *WeightTable) float64 {
	switch f {
	case CombSUM, CombANZ, CombMNZ, CombMIN, CombMAX, CombMED:
		return score
	case Borda:
		return float64(systemSize-rank+1) / float64(systemSize)
	case ISR, LogISR:
		return 1.0 / float64(rank*rank)
	case RRF:
		return 1.0 / float64(rrfK+rank)
	case RBC:
		return weights.At(rank - 1)
	default:
		return 0
	}
}

// post applies the fusion's per-cell post-processing once all inputs
// have been folded (spec.md section 4.5's "post" column).
func (f Fusion) post(val float64, count int) float64 {
	switch f {
	case CombANZ:
		return val / float64(count)
	case CombMNZ, ISR:
		return val * float64(count)
	case LogISR:
		return val * math.Log(float64(count)+1)
	default:
		return val
	}
}

// Normalization selects a per-input-file score rescaling applied before
// folding, for fusions where UsesScore() is true. See spec.md
// section 4.5/4.6.
type Normalization int

const (
	NormNone Normalization = iota
	NormMinMax
	NormSum
	NormMinSum
	NormZScore
)

var normNames = [...]string{
	NormNone:   "none",
	NormMinMax: "minmax",
	NormSum:    "sum",
	NormMinSum: "minsum",
	NormZScore: "std",
}

func (n Normalization) String() string {
	if int(n) < 0 || int(n) >= len(normNames) {
		return "unknown"
	}
	return normNames[n]
}

// ParseNormalization resolves a -n flag value.
func ParseNormalization(name string) (Normalization, bool) {
	for i, n := range normNames {
		if n == name {
			return Normalization(i), true
		}
	}
	return 0, false
}
