package tickets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPattern matches "N° 123 ... ABCD-1234-EFGH" with up to 80 characters between
// the number and the code, line breaks included.
const DefaultPattern = `(?is)N\s*[°ºo]\.?\s*(?P<seq>\d{1,4}).{0,80}?(?P<code>[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4})`

// Ticket is one extracted sequence number and code.
type Ticket struct {
	Seq    int
	Code   string
	Source string
}

// Extractor finds tickets in OCR text.
type Extractor struct {
	re      *regexp.Regexp
	seqIdx  int
	codeIdx int
}

// NewExtractor compiles pattern, which must define the named groups seq and code.
func NewExtractor(pattern string) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	seq, code := re.SubexpIndex("seq"), re.SubexpIndex("code")
	if seq < 0 || code < 0 {
		return nil, fmt.Errorf("pattern must define named groups seq and code")
	}
	return &Extractor{re: re, seqIdx: seq, codeIdx: code}, nil
}

// Extract returns every ticket found in text, in order of appearance. Codes are upper-cased.
func (e *Extractor) Extract(source, text string) []Ticket {
	var out []Ticket
	for _, m := range e.re.FindAllStringSubmatch(text, -1) {
		seq, err := strconv.Atoi(m[e.seqIdx])
		if err != nil {
			continue
		}
		out = append(out, Ticket{
			Seq:    seq,
			Code:   strings.ToUpper(strings.TrimSpace(m[e.codeIdx])),
			Source: source,
		})
	}
	return out
}
