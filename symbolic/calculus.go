package symbolic

// Top-level convenience functions over the Expr interface.

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

// ============================================================
// Expansion
// ============================================================

// Expand distributes products over sums and unrolls small non-negative
// integer powers, so that like-term collection in Simplify can cancel
// across them.
func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = expandProduct(result, expandExpr(f))
		}
		return result
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			exp := n.Rat().Num().Int64()
			if exp >= 0 && exp <= 10 {
				result := Expr(N(1))
				base := expandExpr(v.base)
				for i := int64(0); i < exp; i++ {
					result = expandProduct(result, base)
				}
				return result
			}
		}
		return PowOf(expandExpr(v.base), expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// expandProduct multiplies two expanded expressions, distributing over sums
// term by term. Sums never reach MulOf as whole operands, so the
// canonicalizer cannot collapse a distributed product back into the power
// it was unrolled from.
func expandProduct(a, b Expr) Expr {
	if aa, ok := a.(*Add); ok {
		terms := make([]Expr, len(aa.terms))
		for i, t := range aa.terms {
			terms[i] = expandProduct(t, b)
		}
		return AddOf(terms...)
	}
	if bb, ok := b.(*Add); ok {
		terms := make([]Expr, len(bb.terms))
		for i, t := range bb.terms {
			terms[i] = expandProduct(a, t)
		}
		return AddOf(terms...)
	}
	return MulOf(a, b)
}

// DeepSimplify applies repeated expand+simplify passes until the canonical
// string form is stable. The fixed iteration cap bounds the cost of
// pathological inputs; there is no timeout beyond it.
func DeepSimplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = Expand(curr).Simplify()
	}
	return curr
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the set of variable names appearing unbound in e.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}
