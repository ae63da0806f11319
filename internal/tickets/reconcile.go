package tickets

import (
	"errors"
	"fmt"
	"sort"
)

// Duplicate is a sequence number seen with more than one distinct code.
type Duplicate struct {
	Seq   int
	Codes []string
}

// Result is the reconciliation of extracted tickets against [First, Last].
type Result struct {
	First, Last int
	Matched     []Ticket
	Missing     []int
	Duplicates  []Duplicate
	OutOfRange  []Ticket
}

// Complete reports whether every expected ticket was found exactly once.
func (r Result) Complete() bool {
	return len(r.Missing) == 0 && len(r.Duplicates) == 0
}

// ErrIncomplete is returned by CheckMissing when expected tickets were not found.
var ErrIncomplete = errors.New("ticket range is incomplete")

// CheckMissing fails when any expected sequence number was not found.
// Duplicates and out-of-range tickets only show up in the summary.
func (r Result) CheckMissing() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d missing", ErrIncomplete, len(r.Missing), r.Last-r.First+1)
}

// Reconcile sorts tickets by seq and reports gaps and conflicts. Repeats of the same
// seq and code (a page scanned twice) collapse into one match; the first code seen
// for a seq is the one kept in Matched.
func Reconcile(found []Ticket, first, last int) Result {
	res := Result{First: first, Last: last}
	bySeq := make(map[int]Ticket)
	codes := make(map[int][]string)

	for _, t := range found {
		if t.Seq < first || t.Seq > last {
			res.OutOfRange = append(res.OutOfRange, t)
			continue
		}
		if _, ok := bySeq[t.Seq]; !ok {
			bySeq[t.Seq] = t
		}
		if !contains(codes[t.Seq], t.Code) {
			codes[t.Seq] = append(codes[t.Seq], t.Code)
		}
	}

	for seq := first; seq <= last; seq++ {
		t, ok := bySeq[seq]
		if !ok {
			res.Missing = append(res.Missing, seq)
			continue
		}
		res.Matched = append(res.Matched, t)
		if len(codes[seq]) > 1 {
			res.Duplicates = append(res.Duplicates, Duplicate{Seq: seq, Codes: codes[seq]})
		}
	}
	sort.SliceStable(res.OutOfRange, func(i, j int) bool { return res.OutOfRange[i].Seq < res.OutOfRange[j].Seq })
	return res
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
