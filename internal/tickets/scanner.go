package tickets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/logger"
)

// TextSource turns an image into text.
type TextSource interface {
	Text(ctx context.Context, path string) (string, error)
}

// Scanner reads pages and extracts tickets from them.
type Scanner struct {
	ocr       TextSource
	extractor *Extractor
	log       logger.Logger
}

func NewScanner(ocr TextSource, extractor *Extractor, log logger.Logger) *Scanner {
	return &Scanner{ocr: ocr, extractor: extractor, log: log}
}

// Scan processes pages in order. Text files (.txt) are read directly, anything else
// goes through OCR. A failing page is logged and skipped; the count of failed pages
// is returned with the tickets found on the rest.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]Ticket, int, error) {
	var (
		found  []Ticket
		failed int
	)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return found, failed, err
		}
		text, err := s.pageText(ctx, path)
		if err != nil {
			failed++
			s.log.Warn("page skipped", "page", i+1, "path", path, "error", err)
			continue
		}
		tickets := s.extractor.Extract(filepath.Base(path), text)
		s.log.Info("page scanned", "page", i+1, "path", path, "tickets", len(tickets))
		found = append(found, tickets...)
	}
	return found, failed, nil
}

func (s *Scanner) pageText(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		b, err := os.ReadFile(path)
		return string(b), err
	}
	if s.ocr == nil {
		return "", fmt.Errorf("no OCR client configured for %s", path)
	}
	return s.ocr.Text(ctx, path)
}

// WriteCSV writes a seq,code header and one row per ticket sorted by seq.
func WriteCSV(w io.Writer, list []Ticket) error {
	sorted := append([]Ticket(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "code"}); err != nil {
		return err
	}
	for _, t := range sorted {
		if err := cw.Write([]string{strconv.Itoa(t.Seq), t.Code}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary prints a human-readable reconciliation summary.
func WriteSummary(w io.Writer, r Result) {
	fmt.Fprintf(w, "expected %d-%d: matched %d, missing %d, duplicates %d, out of range %d\n",
		r.First, r.Last, len(r.Matched), len(r.Missing), len(r.Duplicates), len(r.OutOfRange))
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "missing: %s\n", formatRanges(r.Missing))
	}
	for _, d := range r.Duplicates {
		fmt.Fprintf(w, "duplicate %d: %s\n", d.Seq, strings.Join(d.Codes, ", "))
	}
	for _, t := range r.OutOfRange {
		fmt.Fprintf(w, "out of range %d: %s (%s)\n", t.Seq, t.Code, t.Source)
	}
}

// formatRanges collapses sorted numbers into "1-3, 7, 9-10".
func formatRanges(nums []int) string {
	var parts []string
	for i := 0; i < len(nums); {
		j := i
		for j+1 < len(nums) && nums[j+1] == nums[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(nums[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", nums[i], nums[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
