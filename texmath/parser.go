package texmath

import (
	"fmt"

	"github.com/njchilds90/stencilgen/symbolic"
)

// greekNames maps Greek-letter commands onto plain symbol names. The var*
// forms collapse onto their base letter.
var greekNames = map[string]string{
	"alpha": "alpha", "beta": "beta", "gamma": "gamma", "delta": "delta",
	"epsilon": "epsilon", "varepsilon": "epsilon", "zeta": "zeta",
	"eta": "eta", "theta": "theta", "vartheta": "theta", "iota": "iota",
	"kappa": "kappa", "lambda": "lambda", "mu": "mu", "nu": "nu",
	"xi": "xi", "pi": "pi", "rho": "rho", "varrho": "rho",
	"sigma": "sigma", "tau": "tau", "upsilon": "upsilon",
	"phi": "phi", "varphi": "phi", "chi": "chi", "psi": "psi",
	"omega": "omega",
}

// funcBuilders maps function commands onto kernel constructors.
var funcBuilders = map[string]func(symbolic.Expr) symbolic.Expr{
	"sin":  symbolic.SinOf,
	"cos":  symbolic.CosOf,
	"tan":  symbolic.TanOf,
	"exp":  symbolic.ExpOf,
	"ln":   symbolic.LnOf,
	"log":  symbolic.LnOf,
	"sinh": symbolic.SinhOf,
	"cosh": symbolic.CoshOf,
	"tanh": symbolic.TanhOf,
}

// Parse converts a LaTeX math substring into a simplified expression.
func Parse(src string) (symbolic.Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("texmath: unexpected %s at position %d", p.peek(), p.peek().pos)
	}
	return expr.Simplify(), nil
}

type parser struct {
	toks []token
	idx  int
}

func (p *parser) peek() token { return p.toks[p.idx] }
func (p *parser) advance() token {
	t := p.toks[p.idx]
	if t.kind != tokEOF {
		p.idx++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.advance()
	if t.kind != kind {
		return token{}, fmt.Errorf("texmath: expected %s, got %s at position %d", what, t, t.pos)
	}
	return t, nil
}

// expr := term (('+'|'-') term)*
func (p *parser) parseExpr() (symbolic.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []symbolic.Expr{left}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.advance()
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		case tokMinus:
			p.advance()
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, symbolic.MulOf(symbolic.N(-1), t))
		default:
			if len(terms) == 1 {
				return terms[0], nil
			}
			return symbolic.AddOf(terms...), nil
		}
	}
}

// term := unary (('*'|'/') unary | unary)*
//
// Juxtaposed factors multiply implicitly: "2 r h" is 2*r*h.
func (p *parser) parseTerm() (symbolic.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []symbolic.Expr{left}
	for {
		switch p.peek().kind {
		case tokStar:
			p.advance()
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		case tokSlash:
			p.advance()
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, symbolic.PowOf(f, symbolic.N(-1)))
		default:
			if p.startsFactor() {
				f, err := p.parsePower()
				if err != nil {
					return nil, err
				}
				factors = append(factors, f)
				continue
			}
			if len(factors) == 1 {
				return factors[0], nil
			}
			return symbolic.MulOf(factors...), nil
		}
	}
}

// startsFactor reports whether the next token begins an atom, which in a
// term position means implicit multiplication.
func (p *parser) startsFactor() bool {
	switch t := p.peek(); t.kind {
	case tokNumber, tokLetter, tokLParen, tokLBrace:
		return true
	case tokCommand:
		if _, ok := greekNames[t.text]; ok {
			return true
		}
		if _, ok := funcBuilders[t.text]; ok {
			return true
		}
		return t.text == "frac" || t.text == "sqrt"
	}
	return false
}

func (p *parser) parseUnary() (symbolic.Expr, error) {
	if p.peek().kind == tokMinus {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return symbolic.MulOf(symbolic.N(-1), inner), nil
	}
	if p.peek().kind == tokPlus {
		p.advance()
		return p.parseUnary()
	}
	return p.parsePower()
}

// power := atom ('^' exponent)?
func (p *parser) parsePower() (symbolic.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.advance()
	exp, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	return symbolic.PowOf(base, exp), nil
}

// exponent := '{' expr '}' | '-'? (number | letter | greek)
func (p *parser) parseExponent() (symbolic.Expr, error) {
	if p.peek().kind == tokLBrace {
		return p.parseGroup()
	}
	neg := false
	if p.peek().kind == tokMinus {
		p.advance()
		neg = true
	}
	t := p.advance()
	var e symbolic.Expr
	switch t.kind {
	case tokNumber:
		n, err := symbolic.NumFromString(t.text)
		if err != nil {
			return nil, err
		}
		e = n
	case tokLetter:
		e = symbolic.S(t.text)
	case tokCommand:
		name, ok := greekNames[t.text]
		if !ok {
			return nil, fmt.Errorf("texmath: invalid exponent %s at position %d", t, t.pos)
		}
		e = symbolic.S(name)
	default:
		return nil, fmt.Errorf("texmath: invalid exponent %s at position %d", t, t.pos)
	}
	if neg {
		return symbolic.MulOf(symbolic.N(-1), e), nil
	}
	return e, nil
}

func (p *parser) parseAtom() (symbolic.Expr, error) {
	t := p.advance()
	switch t.kind {
	case tokNumber:
		return symbolic.NumFromString(t.text)
	case tokLetter:
		return symbolic.S(t.text), nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return inner, nil
	case tokLBrace:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBrace, `"}"`); err != nil {
			return nil, err
		}
		return inner, nil
	case tokCommand:
		return p.parseCommand(t)
	}
	return nil, fmt.Errorf("texmath: unexpected %s at position %d", t, t.pos)
}

func (p *parser) parseCommand(t token) (symbolic.Expr, error) {
	if name, ok := greekNames[t.text]; ok {
		return symbolic.S(name), nil
	}
	switch t.text {
	case "frac":
		num, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		den, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return symbolic.MulOf(num, symbolic.PowOf(den, symbolic.N(-1))), nil
	case "sqrt":
		arg, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return symbolic.SqrtOf(arg), nil
	}
	if build, ok := funcBuilders[t.text]; ok {
		arg, err := p.parseFuncArg()
		if err != nil {
			return nil, err
		}
		return build(arg), nil
	}
	return nil, fmt.Errorf("texmath: unsupported command %s at position %d", t, t.pos)
}

// parseFuncArg parses the argument of a function command: a parenthesized
// or braced expression, or a single power ("\sin \theta").
func (p *parser) parseFuncArg() (symbolic.Expr, error) {
	switch p.peek().kind {
	case tokLParen, tokLBrace:
		return p.parseAtom()
	}
	return p.parsePower()
}

func (p *parser) parseGroup() (symbolic.Expr, error) {
	if _, err := p.expect(tokLBrace, `"{"`); err != nil {
		return nil, err
	}
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRBrace, `"}"`); err != nil {
		return nil, err
	}
	return inner, nil
}
