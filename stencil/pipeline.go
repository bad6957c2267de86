package stencil

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/njchilds90/stencilgen/symbolic"
	"github.com/njchilds90/stencilgen/texmath"
)

// Config controls a pipeline run.
type Config struct {
	Coords Coords
	Orders []int        // accuracy orders to generate per variable
	Logger *slog.Logger // nil means slog.Default()
}

// DefaultConfig generates 2nd- and 4th-order stencils in spherical
// coordinates.
func DefaultConfig() Config {
	return Config{Coords: Spherical(), Orders: []int{2, 4}}
}

// Skip records one expression or (variable, order) combination that was
// dropped from a run, with the reason. Skips never abort a run.
type Skip struct {
	Segment  string // truncated preview of the offending input
	Variable string // empty for whole-segment skips
	Order    int    // zero for whole-segment skips
	Err      error
}

// Result aggregates a run: the records that succeeded, in input order,
// and the diagnostics for everything that was skipped.
type Result struct {
	Records []Record
	Skips   []Skip
}

const previewLen = 30

func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= previewLen {
		return s
	}
	cut := previewLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Process runs the full pipeline over a raw LaTeX document: extract
// display-math segments, parse each one (right-hand side only when an
// equality is present), and generate a stencil for every configured order
// and every spatial variable that actually occurs in the expression.
//
// A segment that fails to parse, or an unsupported order, is logged and
// skipped; the run continues with the remaining work.
func Process(text string, cfg Config) Result {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	var res Result
	for _, segment := range Extract(text) {
		src := strings.TrimSpace(RightHandSide(segment))
		expr, err := texmath.Parse(src)
		if err != nil {
			log.Warn("could not parse expression", "segment", preview(segment), "err", err)
			res.Skips = append(res.Skips, Skip{Segment: preview(segment), Err: err})
			continue
		}

		free := symbolic.FreeSymbols(expr)
		for _, v := range spatialIn(cfg.Coords, free) {
			for _, order := range cfg.Orders {
				approx, errTerm, err := Generate(expr, v, order, cfg.Coords.Step)
				if err != nil {
					log.Warn("skipping stencil", "segment", preview(segment), "variable", v, "order", order, "err", err)
					res.Skips = append(res.Skips, Skip{Segment: preview(segment), Variable: v, Order: order, Err: err})
					continue
				}
				res.Records = append(res.Records, Record{
					Derivative: symbolic.Diff(expr, v),
					Stencil:    approx,
					Error:      errTerm,
					Variable:   v,
					Order:      order,
				})
			}
		}
	}
	return res
}

// spatialIn returns the configured spatial variables present in the
// free-symbol set, in configuration order.
func spatialIn(c Coords, free map[string]struct{}) []string {
	out := make([]string, 0, len(c.Spatial))
	for _, v := range c.Spatial {
		if _, ok := free[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
