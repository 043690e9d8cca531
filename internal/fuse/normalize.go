package fuse

import "math"

// Normalize rescales scores in place per the selected normalization,
// applied independently to each input file's whole score list
// before folding (spec.md sections 4.5/4.6). NormNone leaves scores
// untouched.
func Normalize(n Normalization, scores []float64) {
	switch n {
	case NormMinMax:
		normalizeMinMax(scores)
	case NormSum:
		normalizeSum(scores)
	case NormMinSum:
		normalizeMinSum(scores)
	case NormZScore:
		normalizeZScore(scores)
	}
}

func minMax(scores []float64) (min, max float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	min, max = scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}

// normalizeMinMax maps scores onto [0, 1]: (s - min) / (max - min). A
// degenerate (constant) list is left untouched, per spec.md section
// 4.5's divide-by-zero guard.
func normalizeMinMax(scores []float64) {
	min, max := minMax(scores)
	span := max - min
	if span == 0 {
		return
	}
	for i, s := range scores {
		scores[i] = (s - min) / span
	}
}

// normalizeSum replaces each score with its absolute value divided by
// the sum of absolute values, matching the original trec.c's
// sum_normalizer, which overwrites each entry with fabsl() before ever
// dividing.
func normalizeSum(scores []float64) {
	var total float64
	for _, s := range scores {
		total += math.Abs(s)
	}
	if total == 0 {
		return
	}
	for i, s := range scores {
		scores[i] = math.Abs(s) / total
	}
}

// normalizeMinSum resolves spec.md's open question on minsum
// normalization -- absent from the original C implementation -- using
// the formula the spec itself proposes: (s - min) / sum(s - min).
func normalizeMinSum(scores []float64) {
	min, _ := minMax(scores)
	var total float64
	shifted := make([]float64, len(scores))
	for i, s := range scores {
		shifted[i] = s - min
		total += shifted[i]
	}
	if total == 0 {
		return
	}
	for i, s := range shifted {
		scores[i] = s / total
	}
}

// normalizeZScore standardizes scores to zero mean, unit variance
// (population variance, matching the original trec.c's zmuv pass).
func normalizeZScore(scores []float64) {
	n := len(scores)
	if n == 0 {
		return
	}
	var mean float64
	for _, s := range scores {
		mean += s
	}
	mean /= float64(n)

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return
	}
	for i, s := range scores {
		scores[i] = (s - mean) / stddev
	}
}
