//go:build amd64

package fastfield

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// accelerated is set at init time based on CPU capabilities, mirroring
// entreya-csvquery's simd.useAVX2/useSSE42 pattern. The word-at-a-time
// scan below doesn't need AVX2 itself -- it's plain 64-bit arithmetic --
// but AVX2 availability correlates with the newer, wider-issue cores
// this path is tuned for, and it's the same signal the teacher already
// gates its own delimiter scan on.
var accelerated bool

func init() {
	accelerated = cpu.X86.HasAVX2 || cpu.X86.HasSSE42
}

// Accelerated reports whether the word-at-a-time field splitter is
// active on this CPU, the way the teacher exposes simd.HasAVX2().
func Accelerated() bool {
	return accelerated
}

func splitImpl(line []byte, dst [][]byte) [][]byte {
	if !accelerated || len(line) < 16 {
		return splitScalar(line, dst)
	}
	return splitSWAR(line, dst)
}

// hasByte uses the classic SWAR "has zero byte" trick to report whether
// b occurs anywhere in an 8-byte word without a per-byte loop;
// splitSWAR calls it twice, once for space and once for tab.
func hasByte(word uint64, b byte) uint64 {
	const lo = 0x0101010101010101
	const hi = 0x8080808080808080
	x := word ^ (lo * uint64(b))
	return (x - lo) &^ x & hi
}

// splitSWAR scans 8 bytes at a time looking for space/tab runs, then
// finishes the tail shorter than a full word with a byte-at-a-time loop.
func splitSWAR(line []byte, dst [][]byte) [][]byte {
	n := len(line)
	i := 0
	inToken := false
	start := 0

	flush := func(end int) {
		if inToken {
			dst = append(dst, line[start:end])
			inToken = false
		}
	}

	for i+8 <= n {
		word := binary.LittleEndian.Uint64(line[i:])
		mask := hasByte(word, ' ') | hasByte(word, '\t')
		if mask == 0 {
			if !inToken {
				inToken = true
				start = i
			}
			i += 8
			continue
		}
		// at least one separator in this word; resolve it byte by byte
		for j := 0; j < 8; j++ {
			b := line[i+j]
			if isSpace(b) {
				flush(i + j)
			} else if !inToken {
				inToken = true
				start = i + j
			}
		}
		i += 8
	}

	for i < n {
		b := line[i]
		if isSpace(b) {
			flush(i)
		} else if !inToken {
			inToken = true
			start = i
		}
		i++
	}
	flush(n)

	return dst
}
