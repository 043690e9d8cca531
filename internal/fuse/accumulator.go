package fuse

import "sort"

// hashSeed and the byte-mixing step below are taken verbatim from the
// original C accumulator's str_hash (pf_accum.c): seed 2081, then for
// each byte c, h ^= c + (h<<6) + (h>>2). spec.md section 4.1 specifies
// the same constants.
const hashSeed = 2081

func hashDocno(s string) uint64 {
	h := uint64(hashSeed)
	for i := 0; i < len(s); i++ {
		c := uint64(s[i])
		h = h ^ (c + (h << 6) + (h >> 2))
	}
	return h
}

// initialAccumulatorCapacity is the per-topic starting size named in
// spec.md section 4.1.
const initialAccumulatorCapacity = 1000

// accumulatorLoadFactor is the rehash trigger: size/capacity > 0.75.
const accumulatorLoadFactor = 0.75

// cellValue is the sum type spec.md's design notes (section 9) ask for
// in place of the original C's type-tagged pointer casts: a cell is
// either a running scalar (ADD/LESS/GREATER) or a sorted score list
// (LIST). The three read sites that need to know which -- update,
// rehash, and topic emission -- type-switch on this instead of casting.
type cellValue interface {
	isCellValue()
}

type scalarValue struct {
	val   float64
	count int
}

func (scalarValue) isCellValue() {}

type sortedValue struct {
	scores []float64 // ascending
}

func (sortedValue) isCellValue() {}

// median returns the median of an ascending-sorted score list, per
// spec.md section 4.6.
func (s sortedValue) median() float64 {
	n := len(s.scores)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 == 1 {
		return s.scores[mid]
	}
	return (s.scores[mid-1] + s.scores[mid]) / 2
}

// insert adds val into the sorted list, preserving ascending order.
func (s *sortedValue) insert(val float64) {
	i := sort.SearchFloat64s(s.scores, val)
	s.scores = append(s.scores, 0)
	copy(s.scores[i+1:], s.scores[i:])
	s.scores[i] = val
}

type cell struct {
	docno string
	set   bool
	value cellValue
}

// Accumulator is the per-(topic) docno-keyed map described in spec.md
// section 4.1: string-keyed hashing with linear probing, a single
// reduction policy fixed at creation, and rehashing to the next prime
// at least 4x the occupied size once the load factor exceeds 0.75.
//
// Docno matching uses exact string equality. The original C compared
// keys with strncmp(entry->docno, docno, strlen(entry->docno)), which
// spec.md section 9 flags as a likely bug (unsafe when one docno is a
// proper prefix of another); this port takes the recommended fix.
type Accumulator struct {
	policy   Policy
	cells    []cell
	size     int
	capacity int
}

// NewAccumulator creates an accumulator map configured for the given
// reduction policy with the initial per-topic capacity.
func NewAccumulator(policy Policy) *Accumulator {
	return newAccumulatorWithCapacity(policy, initialAccumulatorCapacity)
}

func newAccumulatorWithCapacity(policy Policy, requested int) *Accumulator {
	cap := nextPrime(requested)
	return &Accumulator{
		policy:   policy,
		cells:    make([]cell, cap),
		capacity: cap,
	}
}

// Len reports the number of distinct docnos currently accumulated.
func (a *Accumulator) Len() int {
	return a.size
}

func (a *Accumulator) indexFor(docno string) int {
	return int(hashDocno(docno) % uint64(a.capacity))
}

// Update folds score into the cell for docno, creating it on first
// sighting. The reduction applied on repeat sightings follows the
// accumulator's policy (spec.md section 4.1's table).
func (a *Accumulator) Update(docno string, score float64) {
	a.maybeRehash()

	start := a.indexFor(docno)
	idx := start
	for {
		c := &a.cells[idx]
		if !c.set {
			c.docno = docno
			c.set = true
			switch a.policy {
			case PolicyList:
				sv := sortedValue{}
				sv.insert(score)
				c.value = sv
			default:
				c.value = scalarValue{val: score, count: 1}
			}
			a.size++
			return
		}
		if c.docno == docno {
			switch v := c.value.(type) {
			case scalarValue:
				switch a.policy {
				case PolicyLess:
					if score < v.val {
						v.val = score
					}
				case PolicyGreater:
					if score > v.val {
						v.val = score
					}
				default: // PolicyAdd
					v.val += score
				}
				v.count++
				c.value = v
			case sortedValue:
				v.insert(score)
				c.value = v
			}
			return
		}
		idx = (idx + 1) % a.capacity
		if idx == start {
			// capacity exhausted without a free slot; this cannot
			// happen under the 0.75 load-factor invariant, but guard
			// against an infinite loop rather than spin forever.
			return
		}
	}
}

func (a *Accumulator) maybeRehash() {
	if float64(a.size)/float64(a.capacity) <= accumulatorLoadFactor {
		return
	}
	newCap := nextPrime(4 * a.size)
	old := a.cells
	a.cells = make([]cell, newCap)
	a.capacity = newCap
	a.size = 0
	for _, c := range old {
		if !c.set {
			continue
		}
		switch v := c.value.(type) {
		case scalarValue:
			a.reinsertScalar(c.docno, v)
		case sortedValue:
			a.reinsertSorted(c.docno, v)
		}
	}
}

// reinsertScalar places an already-aggregated scalar cell into the
// (larger) table during rehash, without re-running the reduction.
func (a *Accumulator) reinsertScalar(docno string, v scalarValue) {
	idx := a.probeFreeOrMatch(docno)
	a.cells[idx] = cell{docno: docno, set: true, value: v}
	a.size++
}

func (a *Accumulator) reinsertSorted(docno string, v sortedValue) {
	idx := a.probeFreeOrMatch(docno)
	a.cells[idx] = cell{docno: docno, set: true, value: v}
	a.size++
}

func (a *Accumulator) probeFreeOrMatch(docno string) int {
	start := a.indexFor(docno)
	idx := start
	for a.cells[idx].set {
		idx = (idx + 1) % a.capacity
		if idx == start {
			break
		}
	}
	return idx
}

// CellResult is a read-only view of one occupied accumulator cell,
// returned by Cells for topic emission.
type CellResult struct {
	Docno string
	Val   float64
	Count int
}

// Cells walks the raw bucket array and returns every occupied cell's
// (docno, value, count), with the median already applied for
// PolicyList; the fusion's post-processing is left to the caller
// (Engine.Present applies it) -- this is the "why we use
// linear probing" iteration spec.md section 4.5 calls out: the
// emission walk doesn't need the original insertion order, just every
// live slot.
func (a *Accumulator) Cells() []CellResult {
	out := make([]CellResult, 0, a.size)
	for _, c := range a.cells {
		if !c.set {
			continue
		}
		switch v := c.value.(type) {
		case scalarValue:
			out = append(out, CellResult{Docno: c.docno, Val: v.val, Count: v.count})
		case sortedValue:
			out = append(out, CellResult{Docno: c.docno, Val: v.median(), Count: len(v.scores)})
		}
	}
	return out
}
