package fuse

import (
	"math"
	"testing"
)

func almostEqualSlice(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

func TestNormalizeMinMax(t *testing.T) {
	scores := []float64{1, 2, 4}
	Normalize(NormMinMax, scores)
	almostEqualSlice(t, scores, []float64{0, 1.0 / 3, 1})
}

func TestNormalizeMinMaxConstantIsNoOp(t *testing.T) {
	scores := []float64{5, 5, 5}
	Normalize(NormMinMax, scores)
	almostEqualSlice(t, scores, []float64{5, 5, 5})
}

func TestNormalizeSum(t *testing.T) {
	scores := []float64{1, 2, 1}
	Normalize(NormSum, scores)
	almostEqualSlice(t, scores, []float64{0.25, 0.5, 0.25})
}

func TestNormalizeSumTakesAbsoluteValue(t *testing.T) {
	scores := []float64{-3, 1}
	Normalize(NormSum, scores)
	// total = |-3| + |1| = 4; both outputs must be non-negative.
	almostEqualSlice(t, scores, []float64{0.75, 0.25})
}

func TestNormalizeMinSum(t *testing.T) {
	scores := []float64{1, 2, 4}
	Normalize(NormMinSum, scores)
	// shifted = [0, 1, 3], sum = 4
	almostEqualSlice(t, scores, []float64{0, 0.25, 0.75})
}

func TestNormalizeZScore(t *testing.T) {
	scores := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	Normalize(NormZScore, scores)
	var sum float64
	for _, s := range scores {
		sum += s
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("expected zero mean, got sum %v", sum)
	}
}

func TestNormalizeNone(t *testing.T) {
	scores := []float64{3, 1, 2}
	Normalize(NormNone, scores)
	almostEqualSlice(t, scores, []float64{3, 1, 2})
}
