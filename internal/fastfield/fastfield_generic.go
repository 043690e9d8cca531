//go:build !amd64

package fastfield

// Accelerated reports whether the word-at-a-time field splitter is
// active on this CPU. Always false on non-amd64 targets, matching
// entreya-csvquery's simd.HasAVX2 generic stub.
func Accelerated() bool {
	return false
}

func splitImpl(line []byte, dst [][]byte) [][]byte {
	return splitScalar(line, dst)
}
