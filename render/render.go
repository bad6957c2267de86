// Package render serializes stencil records to LaTeX documents.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/njchilds90/stencilgen/stencil"
	"github.com/njchilds90/stencilgen/symbolic"
)

const (
	preamble = "\\documentclass{article}\n\\usepackage{amsmath}\n\\begin{document}\n\n"
	closing  = "\\end{document}\n"
)

// block renders one record as a display-math approximation with its
// truncation-error label.
func block(rec stencil.Record) string {
	return fmt.Sprintf("\\[\n%s \\approx %s \\quad (%s)\n\\]\n\n",
		symbolic.LaTeX(rec.Derivative), symbolic.LaTeX(rec.Stencil), rec.Error.String())
}

// Combined produces the full document: preamble, one block per record in
// order, end marker. Zero records still yields a valid document.
func Combined(records []stencil.Record) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	for _, rec := range records {
		sb.WriteString(block(rec))
	}
	sb.WriteString(closing)
	return sb.String()
}

// WriteCombined writes the combined document to path.
func WriteCombined(path string, records []stencil.Record) error {
	if err := os.WriteFile(path, []byte(Combined(records)), 0o644); err != nil {
		return fmt.Errorf("render: write combined document: %w", err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename returns the deterministic name for a record's standalone
// document: the differentiation variable, the error label with
// non-alphanumerics collapsed to underscores, and the record's 1-based
// position zero-padded to three digits.
func Filename(rec stencil.Record, index int) string {
	label := strings.Trim(unsafeChars.ReplaceAllString(rec.Error.String(), "_"), "_")
	return fmt.Sprintf("stencil_%s_%s_%03d.tex", rec.Variable, label, index)
}

// WriteSplit writes one standalone document per record into dir, creating
// the directory if needed. Every record is written; the first I/O error
// aborts and propagates. Returns the number of files written.
func WriteSplit(dir string, records []stencil.Record) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("render: create output directory: %w", err)
	}
	for i, rec := range records {
		doc := preamble + block(rec) + closing
		path := filepath.Join(dir, Filename(rec, i+1))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return i, fmt.Errorf("render: write %s: %w", path, err)
		}
	}
	return len(records), nil
}
