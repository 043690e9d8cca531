// Package diagnostics writes an optional, debugging-only dump of each
// topic's live accumulator state to disk. It is never read back by a
// later run; it exists purely so an operator can inspect why a topic
// produced the ranking it did (the hidden `-snapshot DIR` flag in
// cmd/polyfuse).
package diagnostics

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"

	"github.com/rmit-ir/polyfuse/internal/fuse"
)

// Snapshotter dumps one lz4-compressed file per topic into dir, each
// file holding every live accumulator cell as a plain-text line of
// `<docno> <value> <count>`. This mirrors the teacher's
// Sorter.flushChunk (internal/indexer/sorter.go): a bufio.Writer over
// an lz4.Writer over a freshly created file, flushed and closed in
// that order.
type Snapshotter struct {
	dir string
}

// NewSnapshotter prepares to write snapshot files under dir, creating
// it if necessary.
func NewSnapshotter(dir string) (*Snapshotter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diagnostics: create snapshot dir: %w", err)
	}
	return &Snapshotter{dir: dir}, nil
}

// WriteTopic dumps acc's occupied cells to `<dir>/topic-<qid>.lz4`.
func (s *Snapshotter) WriteTopic(qid int, acc *fuse.Accumulator) error {
	path := filepath.Join(s.dir, fmt.Sprintf("topic-%d.lz4", qid))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diagnostics: create %s: %w", path, err)
	}

	lzWriter := lz4.NewWriter(file)
	bufferedWriter := bufio.NewWriter(lzWriter)

	for _, cell := range acc.Cells() {
		if _, err := fmt.Fprintf(bufferedWriter, "%s %.9f %d\n", cell.Docno, cell.Val, cell.Count); err != nil {
			bufferedWriter.Flush()
			lzWriter.Close()
			file.Close()
			return fmt.Errorf("diagnostics: write topic %d: %w", qid, err)
		}
	}

	if err := bufferedWriter.Flush(); err != nil {
		lzWriter.Close()
		file.Close()
		return fmt.Errorf("diagnostics: flush topic %d: %w", qid, err)
	}
	if err := lzWriter.Close(); err != nil {
		file.Close()
		return fmt.Errorf("diagnostics: close lz4 stream for topic %d: %w", qid, err)
	}
	return file.Close()
}
