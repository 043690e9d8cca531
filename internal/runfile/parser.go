package runfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/rmit-ir/polyfuse/internal/fastfield"
)

// MaxLineBytes bounds a single run-file line, matching the original
// tool's BUFSIZ-sized read buffer (spec.md section 6: "Lines must fit
// in a 4 KiB buffer; longer lines are fatal").
const MaxLineBytes = 4096

// NumFields is the number of whitespace-separated columns a run-file
// line must have: qid, iter, docno, rank, score, system.
const NumFields = 6

// ParseError reports a fatal, line-localized problem with a run file.
// The driver treats every ParseError as fatal per spec.md section 7.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Read parses a full TREC run file from r. Fields are split on runs of
// whitespace; the on-disk rank column is ignored and replaced with a
// 1-based counter that resets whenever the topic (qid) column changes,
// per spec.md section 6.
func Read(r io.Reader) (*Run, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, MaxLineBytes), MaxLineBytes)

	run := &Run{}
	var fields [][]byte
	lineNo := 0
	rank := 0
	var prevQID int
	haveTopic := false

	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		fields = fastfield.Split(line, fields)
		if len(fields) != NumFields {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("found %d fields but expected %d", len(fields), NumFields)}
		}

		qid, err := strconv.Atoi(string(fields[0]))
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid qid %q", fields[0])}
		}
		docno := string(fields[2])
		score, err := strconv.ParseFloat(string(fields[4]), 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid score %q", fields[4])}
		}
		system := string(fields[5])

		if !haveTopic || qid != prevQID {
			rank = 0
			prevQID = qid
			haveTopic = true
			if !run.hasTopic(qid) {
				run.Topics = append(run.Topics, qid)
			}
		}
		rank++

		run.Entries = append(run.Entries, Entry{
			QID:    qid,
			Docno:  docno,
			Rank:   rank,
			Score:  score,
			System: system,
		})
		if rank > run.MaxRank {
			run.MaxRank = rank
		}
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, &ParseError{Line: lineNo + 1, Msg: fmt.Sprintf("line exceeds %d bytes", MaxLineBytes)}
		}
		return nil, err
	}

	return run, nil
}
