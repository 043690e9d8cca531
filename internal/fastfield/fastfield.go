// Package fastfield splits a whitespace-separated TREC run-file line
// into its six fields. It mirrors the capability-gated scan in
// entreya-csvquery's internal/simd package: a word-at-a-time scan is
// used where it's expected to pay off, falling back to a scalar
// byte-at-a-time loop everywhere else.
package fastfield

// MaxFields is the number of columns a well-formed run-file line has:
// qid, iter, docno, rank, score, system.
const MaxFields = 6

// Split tokenizes line on runs of ASCII space/tab, appending each
// non-empty token to dst and returning the updated slice. dst is
// reused across calls by the parser to avoid per-line allocation.
func Split(line []byte, dst [][]byte) [][]byte {
	dst = dst[:0]
	return splitImpl(line, dst)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// splitScalar is the portable byte-at-a-time fallback. It is also what
// splitImpl delegates to on platforms/inputs where the accelerated path
// isn't worth taking (short lines, non-amd64 targets).
func splitScalar(line []byte, dst [][]byte) [][]byte {
	i := 0
	n := len(line)
	for i < n {
		for i < n && isSpace(line[i]) {
			i++
		}
		start := i
		for i < n && !isSpace(line[i]) {
			i++
		}
		if i > start {
			dst = append(dst, line[start:i])
		}
	}
	return dst
}
