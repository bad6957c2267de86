package symbolic_test

import (
	"testing"

	"github.com/njchilds90/stencilgen/symbolic"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_FromString(t *testing.T) {
	n, err := symbolic.NumFromString("2.5")
	if err != nil {
		t.Fatalf("NumFromString(2.5): %v", err)
	}
	if n.String() != "5/2" {
		t.Errorf("want 5/2, got %s", n.String())
	}
	if _, err := symbolic.NumFromString("nope"); err == nil {
		t.Error("NumFromString(nope) should fail")
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := symbolic.N(5).Diff("x")
	if symbolic.String(result) != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", symbolic.String(result))
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub_Match(t *testing.T) {
	result := symbolic.Sub(symbolic.S("x"), "x", symbolic.N(3))
	if symbolic.String(result) != "3" {
		t.Errorf("want 3, got %s", symbolic.String(result))
	}
}

func TestSym_Diff(t *testing.T) {
	if got := symbolic.String(symbolic.Diff(symbolic.S("x"), "x")); got != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", got)
	}
	if got := symbolic.String(symbolic.Diff(symbolic.S("y"), "x")); got != "0" {
		t.Errorf("d/dx(y) should be 0, got %s", got)
	}
}

func TestSym_LaTeX_Greek(t *testing.T) {
	if got := symbolic.S("theta").LaTeX(); got != `\theta` {
		t.Errorf("want \\theta, got %s", got)
	}
	if got := symbolic.S("r").LaTeX(); got != "r" {
		t.Errorf("want r, got %s", got)
	}
}

func TestSym_LaTeX_MultiCharName(t *testing.T) {
	// Non-Greek multi-character names are not LaTeX commands; they render
	// as a single upright-italic identifier.
	if got := symbolic.S("dx").LaTeX(); got != `\mathit{dx}` {
		t.Errorf(`want \mathit{dx}, got %s`, got)
	}
}

// ============================================================
// Add tests
// ============================================================

func TestAdd_Simple(t *testing.T) {
	expr := symbolic.AddOf(symbolic.S("x"), symbolic.N(3))
	if symbolic.String(expr) != "x + 3" {
		t.Errorf("want 'x + 3', got %s", symbolic.String(expr))
	}
}

func TestAdd_CombinesLikeSymbols(t *testing.T) {
	x := symbolic.S("x")
	expr := symbolic.AddOf(x, x, x, symbolic.N(2))
	if symbolic.String(expr) != "3*x + 2" {
		t.Errorf("want '3*x + 2', got %s", symbolic.String(expr))
	}
}

func TestAdd_CombinesLikeProducts(t *testing.T) {
	h := symbolic.S("h")
	r := symbolic.S("r")
	expr := symbolic.AddOf(
		symbolic.MulOf(symbolic.N(2), h, r),
		symbolic.MulOf(r, h),
	)
	if symbolic.String(expr) != "3*h*r" {
		t.Errorf("want '3*h*r', got %s", symbolic.String(expr))
	}
}

func TestAdd_CancelsToZero(t *testing.T) {
	r2 := symbolic.PowOf(symbolic.S("r"), symbolic.N(2))
	expr := symbolic.AddOf(r2, symbolic.MulOf(symbolic.N(-1), r2))
	if symbolic.String(expr) != "0" {
		t.Errorf("r^2 - r^2 should be 0, got %s", symbolic.String(expr))
	}
}

// ============================================================
// Mul tests
// ============================================================

func TestMul_CombinesPowers(t *testing.T) {
	h := symbolic.S("h")
	expr := symbolic.MulOf(h, h)
	if symbolic.String(expr) != "h^2" {
		t.Errorf("h*h should be h^2, got %s", symbolic.String(expr))
	}
}

func TestMul_CancelsReciprocal(t *testing.T) {
	h := symbolic.S("h")
	expr := symbolic.MulOf(h, symbolic.PowOf(h, symbolic.N(-1)))
	if symbolic.String(expr) != "1" {
		t.Errorf("h*h^-1 should be 1, got %s", symbolic.String(expr))
	}
}

func TestMul_ZeroCoefficient(t *testing.T) {
	expr := symbolic.MulOf(symbolic.N(0), symbolic.S("x"))
	if symbolic.String(expr) != "0" {
		t.Errorf("0*x should be 0, got %s", symbolic.String(expr))
	}
}

func TestMul_LaTeX_Fraction(t *testing.T) {
	h := symbolic.S("h")
	expr := symbolic.MulOf(symbolic.F(1, 2), symbolic.S("r"), symbolic.PowOf(h, symbolic.N(-1)))
	if got := expr.LaTeX(); got != `\frac{r}{2 h}` {
		t.Errorf("want \\frac{r}{2 h}, got %s", got)
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_FoldsIntegerPowers(t *testing.T) {
	expr := symbolic.PowOf(symbolic.N(2), symbolic.N(10))
	if symbolic.String(expr) != "1024" {
		t.Errorf("2^10 should be 1024, got %s", symbolic.String(expr))
	}
}

func TestPow_DistributesOverProduct(t *testing.T) {
	expr := symbolic.PowOf(symbolic.MulOf(symbolic.N(2), symbolic.S("h")), symbolic.N(-1))
	if symbolic.String(expr) != "1/2*h^-1" {
		t.Errorf("(2h)^-1 should be 1/2*h^-1, got %s", symbolic.String(expr))
	}
}

func TestPow_Diff_PowerRule(t *testing.T) {
	expr := symbolic.PowOf(symbolic.S("r"), symbolic.N(2))
	if got := symbolic.String(symbolic.Diff(expr, "r")); got != "2*r" {
		t.Errorf("d/dr(r^2) should be 2*r, got %s", got)
	}
}

func TestPow_LaTeX_Reciprocal(t *testing.T) {
	expr := symbolic.PowOf(symbolic.S("r"), symbolic.N(-2))
	if got := expr.LaTeX(); got != `\frac{1}{r^{2}}` {
		t.Errorf("want \\frac{1}{r^{2}}, got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_Diff_Chain(t *testing.T) {
	expr := symbolic.SinOf(symbolic.MulOf(symbolic.N(2), symbolic.S("x")))
	got := symbolic.String(symbolic.Diff(expr, "x"))
	if got != "2*cos(2*x)" {
		t.Errorf("d/dx sin(2x) should be 2*cos(2*x), got %s", got)
	}
}

func TestFunc_ExactRules(t *testing.T) {
	if got := symbolic.String(symbolic.SinOf(symbolic.N(0))); got != "0" {
		t.Errorf("sin(0) should be 0, got %s", got)
	}
	if got := symbolic.String(symbolic.ExpOf(symbolic.LnOf(symbolic.S("x")))); got != "x" {
		t.Errorf("exp(ln(x)) should be x, got %s", got)
	}
}

func TestFunc_LaTeX(t *testing.T) {
	expr := symbolic.SinOf(symbolic.S("theta"))
	if got := expr.LaTeX(); got != `\sin\left(\theta\right)` {
		t.Errorf("want \\sin\\left(\\theta\\right), got %s", got)
	}
}

// ============================================================
// Expand / DeepSimplify tests
// ============================================================

func TestExpand_Square(t *testing.T) {
	h := symbolic.S("h")
	r := symbolic.S("r")
	expr := symbolic.Expand(symbolic.PowOf(symbolic.AddOf(h, r), symbolic.N(2)))
	if symbolic.String(expr) != "2*h*r + h^2 + r^2" {
		t.Errorf("want '2*h*r + h^2 + r^2', got %s", symbolic.String(expr))
	}
}

func TestExpand_ProductOfIdenticalSums(t *testing.T) {
	// MulOf canonicalizes (h+r)*(h+r) into (h+r)^2, so expansion must
	// terminate when the unrolled product collapses back into the power.
	h := symbolic.S("h")
	r := symbolic.S("r")
	sum := symbolic.AddOf(h, r)
	expr := symbolic.Expand(symbolic.MulOf(sum, sum))
	if symbolic.String(expr) != "2*h*r + h^2 + r^2" {
		t.Errorf("want '2*h*r + h^2 + r^2', got %s", symbolic.String(expr))
	}
}

func TestDeepSimplify_CentralDifferenceOfSquare(t *testing.T) {
	// ((r+h)^2 - (r-h)^2) / (2h) must reduce to exactly 2r: the step
	// symbol cancels analytically for a quadratic.
	h := symbolic.S("h")
	r := symbolic.S("r")
	plus := symbolic.PowOf(symbolic.AddOf(r, h), symbolic.N(2))
	minus := symbolic.PowOf(symbolic.AddOf(r, symbolic.MulOf(symbolic.N(-1), h)), symbolic.N(2))
	quotient := symbolic.MulOf(
		symbolic.AddOf(plus, symbolic.MulOf(symbolic.N(-1), minus)),
		symbolic.PowOf(symbolic.MulOf(symbolic.N(2), h), symbolic.N(-1)),
	)
	got := symbolic.DeepSimplify(quotient)
	want := symbolic.MulOf(symbolic.N(2), r)
	if !got.Equal(want) {
		t.Errorf("want 2*r, got %s", symbolic.String(got))
	}
}

func TestFreeSymbols(t *testing.T) {
	expr := symbolic.AddOf(
		symbolic.PowOf(symbolic.S("r"), symbolic.N(2)),
		symbolic.SinOf(symbolic.S("theta")),
	)
	free := symbolic.FreeSymbols(expr)
	if len(free) != 2 {
		t.Fatalf("want 2 free symbols, got %d", len(free))
	}
	for _, name := range []string{"r", "theta"} {
		if _, ok := free[name]; !ok {
			t.Errorf("missing free symbol %s", name)
		}
	}
}

// ============================================================
// BigO tests
// ============================================================

func TestBigO_Labels(t *testing.T) {
	o := symbolic.OTerm("h", 2)
	if o.String() != "O(h^2)" {
		t.Errorf("want O(h^2), got %s", o.String())
	}
	if o.LaTeX() != `\mathcal{O}(h^{2})` {
		t.Errorf("want \\mathcal{O}(h^{2}), got %s", o.LaTeX())
	}
}
