package fuse

import (
	"errors"
	"fmt"

	"github.com/rmit-ir/polyfuse/internal/output"
	"github.com/rmit-ir/polyfuse/internal/runfile"
)

// ErrNoFusionConfigured is returned by Fold/Present when called before
// NewEngine established a fusion.
var ErrNoFusionConfigured = errors.New("fuse: engine has no fusion configured")

// ErrInvalidDepth is returned by Present for a non-positive depth.
var ErrInvalidDepth = errors.New("fuse: output depth must be positive")

// Engine drives the state machine of spec.md section 4.7:
// idle -> configured -> initialized -> emitted. The transitions are
// implicit: idle is a zero Engine (topics == nil), configured is an
// Engine from NewEngine that has not folded anything yet, initialized
// is tracked by foldedAny, and emitted is tracked by presented, which
// also makes a second Present call idempotent rather than undefined.
type Engine struct {
	fusion Fusion
	norm   Normalization
	rrfK   int
	phi    float64

	weights *WeightTable
	topics  *TopicDirectory

	topicOrder []int
	foldedAny  bool

	presented  bool
	presentErr error
}

// EngineConfig carries the options fixed at configuration time:
// normalization mode, the RRF constant, and the RBC persistence
// parameter. Only the fields relevant to the chosen fusion are
// consulted.
type EngineConfig struct {
	Normalization Normalization
	RRFConstant   int
	RBCPersist    float64
}

// NewEngine performs the idle -> configured transition: fixes the
// fusion algorithm and its supporting parameters, and allocates the
// (empty) topic directory and weight table.
func NewEngine(fusion Fusion, cfg EngineConfig) *Engine {
	return &Engine{
		fusion:  fusion,
		norm:    cfg.Normalization,
		rrfK:    cfg.RRFConstant,
		phi:     cfg.RBCPersist,
		weights: NewWeightTable(),
		topics:  NewTopicDirectory(fusion.Policy()),
	}
}

// Fold folds one input file's entries into the engine's accumulators,
// applying the configured fusion's contribution function, its
// per-file weight, and (for score-based fusions) the configured
// normalization. This implements spec.md section 4.5's folding step
// and the configured/initialized transitions of section 4.7: the
// first call fixes the topic emission order from that input's topic
// list, in first-seen order, and every call extends the weight table
// to the input's deepest rank before folding, regardless of whether
// RBC is the active fusion (section 9's "max-rank vs RBC depth
// coupling" note).
func (e *Engine) Fold(run *runfile.Run, weight float64) error {
	if e.topics == nil {
		return ErrNoFusionConfigured
	}

	e.weights.Extend(run.MaxRank, e.phi)

	if !e.foldedAny {
		e.topicOrder = append([]int(nil), run.Topics...)
		for _, qid := range e.topicOrder {
			e.topics.Accumulator(qid)
		}
	}

	scores := e.normalizedScores(run)

	var systemSize map[int]int
	if e.fusion == Borda {
		systemSize = systemSizesByTopic(run)
	}

	for i, entry := range run.Entries {
		if entry.Rank > e.weights.Len() {
			continue
		}
		score := 0.0
		if scores != nil {
			score = scores[i]
		}
		n := systemSize[entry.QID]
		contribution := e.fusion.contribution(entry.Rank, score, n, e.rrfK, e.weights) * weight

		acc := e.topics.Accumulator(entry.QID)
		acc.Update(entry.Docno, contribution)
	}

	e.foldedAny = true
	return nil
}

// normalizedScores returns a copy of run's per-entry scores,
// normalized in place as a single pass over the whole file (no
// per-topic coupling, per spec.md section 4.6), or nil when the
// configured fusion ignores score input entirely.
func (e *Engine) normalizedScores(run *runfile.Run) []float64 {
	if !e.fusion.UsesScore() {
		return nil
	}
	scores := make([]float64, len(run.Entries))
	for i, entry := range run.Entries {
		scores[i] = entry.Score
	}
	Normalize(e.norm, scores)
	return scores
}

// systemSizesByTopic counts, per topic, how many entries this input
// file contributed -- Borda's "n" in (n - r + 1)/n.
func systemSizesByTopic(run *runfile.Run) map[int]int {
	sizes := make(map[int]int)
	for _, entry := range run.Entries {
		sizes[entry.QID]++
	}
	return sizes
}

// Present performs the initialized -> emitted transition: for every
// topic in first-seen order, walks every occupied accumulator cell
// through a bounded top-depth heap, and writes the resulting ranking
// through w. A second call is idempotent, returning the first call's
// result without emitting anything further, per spec.md section 4.7's
// closing note.
func (e *Engine) Present(w *output.Writer, runID string, depth int, preventTies bool) error {
	if e.presented {
		return e.presentErr
	}
	e.presented = true

	if e.topics == nil {
		e.presentErr = ErrNoFusionConfigured
		return e.presentErr
	}
	if depth <= 0 {
		e.presentErr = ErrInvalidDepth
		return e.presentErr
	}

	for _, qid := range e.topicOrder {
		acc := e.topics.Accumulator(qid)
		h := newTopK(depth)
		for _, c := range acc.Cells() {
			val := e.fusion.post(c.Val, c.Count)
			h.Offer(ResultItem{Docno: c.Docno, Score: val})
		}
		items := h.Drain()
		n := len(items)
		for i, item := range items {
			score := item.Score
			if preventTies {
				// the emitted score is perturbed by the item's position
				// in the ascending pop order predating Drain's reversal,
				// per spec.md section 4.5's tie-preventing output note.
				score += float64(n - 1 - i)
			}
			if err := w.WriteEntry(qid, item.Docno, i+1, score, runID); err != nil {
				e.presentErr = fmt.Errorf("fuse: present topic %d: %w", qid, err)
				return e.presentErr
			}
		}
	}

	if err := w.Flush(); err != nil {
		e.presentErr = err
		return e.presentErr
	}
	return nil
}

// Topics returns the topic emission order fixed by the first Fold
// call, for callers (such as the diagnostics snapshot) that need to
// walk the same topics Present will emit.
func (e *Engine) Topics() []int {
	return e.topicOrder
}

// Accumulator exposes the live accumulator for qid, for diagnostics
// snapshotting before Present drains it through the output heap.
func (e *Engine) Accumulator(qid int) *Accumulator {
	return e.topics.Accumulator(qid)
}
