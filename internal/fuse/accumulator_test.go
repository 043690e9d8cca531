package fuse

import "testing"

func TestAccumulatorAddPolicy(t *testing.T) {
	acc := NewAccumulator(PolicyAdd)
	acc.Update("docA", 1.0)
	acc.Update("docA", 2.5)
	acc.Update("docB", 4.0)

	cells := acc.Cells()
	got := map[string]CellResult{}
	for _, c := range cells {
		got[c.Docno] = c
	}
	if got["docA"].Val != 3.5 || got["docA"].Count != 2 {
		t.Errorf("docA = %+v, want val 3.5 count 2", got["docA"])
	}
	if got["docB"].Val != 4.0 || got["docB"].Count != 1 {
		t.Errorf("docB = %+v, want val 4.0 count 1", got["docB"])
	}
}

func TestAccumulatorLessPolicy(t *testing.T) {
	acc := NewAccumulator(PolicyLess)
	acc.Update("docA", 5.0)
	acc.Update("docA", 2.0)
	acc.Update("docA", 8.0)

	cells := acc.Cells()
	if len(cells) != 1 || cells[0].Val != 2.0 || cells[0].Count != 3 {
		t.Errorf("got %+v, want val 2.0 count 3", cells)
	}
}

func TestAccumulatorGreaterPolicy(t *testing.T) {
	acc := NewAccumulator(PolicyGreater)
	acc.Update("docA", 5.0)
	acc.Update("docA", 2.0)
	acc.Update("docA", 8.0)

	cells := acc.Cells()
	if len(cells) != 1 || cells[0].Val != 8.0 || cells[0].Count != 3 {
		t.Errorf("got %+v, want val 8.0 count 3", cells)
	}
}

func TestAccumulatorListPolicyMedian(t *testing.T) {
	acc := NewAccumulator(PolicyList)
	acc.Update("docA", 5.0)
	acc.Update("docA", 1.0)
	acc.Update("docA", 3.0)

	cells := acc.Cells()
	if len(cells) != 1 || cells[0].Val != 3.0 || cells[0].Count != 3 {
		t.Errorf("got %+v, want median 3.0 count 3", cells)
	}
}

func TestAccumulatorListPolicyMedianEvenCount(t *testing.T) {
	acc := NewAccumulator(PolicyList)
	acc.Update("docA", 1.0)
	acc.Update("docA", 2.0)
	acc.Update("docA", 3.0)
	acc.Update("docA", 4.0)

	cells := acc.Cells()
	if len(cells) != 1 || cells[0].Val != 2.5 {
		t.Errorf("got %+v, want median 2.5", cells)
	}
}

func TestAccumulatorExactDocnoEquality(t *testing.T) {
	// a prefix relationship between two docnos must not be treated as a
	// match: "doc1" and "doc10" are distinct keys.
	acc := NewAccumulator(PolicyAdd)
	acc.Update("doc1", 1.0)
	acc.Update("doc10", 2.0)

	if acc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (docno prefix must not collide)", acc.Len())
	}
}

func TestAccumulatorRehashPreservesValues(t *testing.T) {
	acc := newAccumulatorWithCapacity(PolicyAdd, 7)
	for i := 0; i < 500; i++ {
		docno := docnoFor(i)
		acc.Update(docno, float64(i))
	}
	if acc.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", acc.Len())
	}
	for i := 0; i < 500; i++ {
		docno := docnoFor(i)
		found := false
		for _, c := range acc.Cells() {
			if c.Docno == docno {
				found = true
				if c.Val != float64(i) {
					t.Errorf("%s: val = %v, want %v", docno, c.Val, float64(i))
				}
			}
		}
		if !found {
			t.Errorf("%s missing after rehash", docno)
		}
	}
}

func docnoFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := []byte{letters[i%26], letters[(i/26)%26], letters[(i/676)%26]}
	return string(b)
}
