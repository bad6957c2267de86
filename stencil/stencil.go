// Package stencil turns LaTeX documents into symbolic finite-difference
// stencils: it extracts display-math segments, parses them, and replaces
// partial derivatives with central-difference approximations.
package stencil

import (
	"errors"
	"fmt"

	"github.com/njchilds90/stencilgen/symbolic"
)

// ErrUnsupportedOrder is returned when an accuracy order without a known
// central-difference stencil is requested.
var ErrUnsupportedOrder = errors.New("unsupported stencil order")

// Record is one generated stencil: the exact partial derivative, its
// finite-difference approximation, and the truncation-error term. Records
// are immutable and identified only by their position in a run's output.
type Record struct {
	Derivative symbolic.Expr
	Stencil    symbolic.Expr
	Error      *symbolic.BigO
	Variable   string
	Order      int
}

// Generate produces the central finite-difference approximation of
// ∂expr/∂varName at the given accuracy order, using step as the grid
// spacing symbol. The result is fully simplified; for polynomial inputs
// the step symbol cancels analytically.
//
// Order 2 uses the two-point stencil (f(x+h) - f(x-h)) / (2h); order 4
// the five-point stencil (-f(x+2h) + 8f(x+h) - 8f(x-h) + f(x-2h)) / (12h).
func Generate(expr symbolic.Expr, varName string, order int, step string) (symbolic.Expr, *symbolic.BigO, error) {
	x := symbolic.S(varName)
	h := symbolic.S(step)
	shift := func(k int64) symbolic.Expr {
		return symbolic.Sub(expr, varName, symbolic.AddOf(x, symbolic.MulOf(symbolic.N(k), h)))
	}

	var raw symbolic.Expr
	switch order {
	case 2:
		raw = symbolic.MulOf(
			symbolic.AddOf(shift(1), symbolic.MulOf(symbolic.N(-1), shift(-1))),
			symbolic.PowOf(symbolic.MulOf(symbolic.N(2), h), symbolic.N(-1)),
		)
	case 4:
		raw = symbolic.MulOf(
			symbolic.AddOf(
				symbolic.MulOf(symbolic.N(-1), shift(2)),
				symbolic.MulOf(symbolic.N(8), shift(1)),
				symbolic.MulOf(symbolic.N(-8), shift(-1)),
				shift(-2),
			),
			symbolic.PowOf(symbolic.MulOf(symbolic.N(12), h), symbolic.N(-1)),
		)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedOrder, order)
	}

	// Simplification cost is unbounded in expression size; accepted, see
	// the resource model in the docs.
	return symbolic.DeepSimplify(raw), symbolic.OTerm(step, order), nil
}
