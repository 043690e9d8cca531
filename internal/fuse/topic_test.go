package fuse

import "testing"

func TestTopicDirectoryCreatesAndReuses(t *testing.T) {
	dir := NewTopicDirectory(PolicyAdd)
	a1 := dir.Accumulator(101)
	a2 := dir.Accumulator(101)
	if a1 != a2 {
		t.Fatal("expected the same accumulator for a repeated qid")
	}
	if dir.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", dir.Len())
	}

	dir.Accumulator(202)
	if dir.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", dir.Len())
	}
}

func TestTopicDirectoryRehashPreservesAccumulators(t *testing.T) {
	dir := NewTopicDirectory(PolicyAdd)
	accs := make(map[int]*Accumulator)
	for qid := 0; qid < 300; qid++ {
		acc := dir.Accumulator(qid)
		acc.Update("doc", float64(qid))
		accs[qid] = acc
	}
	for qid, acc := range accs {
		got := dir.Accumulator(qid)
		if got != acc {
			t.Fatalf("accumulator identity lost across rehash for qid %d", qid)
		}
		cells := got.Cells()
		if len(cells) != 1 || cells[0].Val != float64(qid) {
			t.Fatalf("accumulator contents lost across rehash for qid %d: %+v", qid, cells)
		}
	}
	if dir.Len() != 300 {
		t.Fatalf("Len() = %d, want 300", dir.Len())
	}
}

func TestTopicDirectoryTopics(t *testing.T) {
	dir := NewTopicDirectory(PolicyAdd)
	dir.Accumulator(5)
	dir.Accumulator(9)
	dir.Accumulator(1)
	topics := dir.Topics()
	if len(topics) != 3 {
		t.Fatalf("Topics() returned %d entries, want 3", len(topics))
	}
	seen := map[int]bool{}
	for _, q := range topics {
		seen[q] = true
	}
	for _, want := range []int{5, 9, 1} {
		if !seen[want] {
			t.Errorf("Topics() missing %d", want)
		}
	}
}
