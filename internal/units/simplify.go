package units

import (
	"strconv"
	"strings"
)

// Simplify reduces a unit expression to canonical display form: composite
// units expand (ksi -> kip/in^2), digit suffixes become exponents
// (in3 -> in^3), the */÷/^ structure collapses into per-symbol exponents,
// and cancelled symbols drop. kip*in renders as kip-in (moment convention);
// a pure denominator renders as 1/s. Expressions that fail to parse are
// returned trimmed but otherwise untouched.
func Simplify(expr string) string {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return ""
	}
	toks, ok := tokenizeExpr(trimmed)
	if !ok {
		return trimmed
	}
	toks = expandComposites(toks)
	toks = normalizeSuffixes(toks)
	terms, ok := parseTokens(toks)
	if !ok {
		return trimmed
	}
	return renderTerms(terms)
}

type unitTerm struct {
	symbol string
	exp    int
}

// parseExpr returns the (symbol, exponent) multiset of a unit expression in
// first-occurrence order, with composites expanded.
func parseExpr(expr string) ([]unitTerm, bool) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, true
	}
	toks, ok := tokenizeExpr(trimmed)
	if !ok {
		return nil, false
	}
	toks = expandComposites(toks)
	toks = normalizeSuffixes(toks)
	return parseTokens(toks)
}

type utokKind int

const (
	utokSymbol utokKind = iota
	utokNumber
	utokOp // one of * / ^ ( )
)

type utok struct {
	kind utokKind
	text string
}

func tokenizeExpr(expr string) ([]utok, bool) {
	var toks []utok
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '*' || c == '/' || c == '^' || c == '(' || c == ')':
			toks = append(toks, utok{kind: utokOp, text: string(c)})
			i++
		case c == '-' && i+1 < len(expr) && expr[i+1] >= '0' && expr[i+1] <= '9':
			// negative exponent digits, e.g. s^-1
			j := i + 1
			for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
				j++
			}
			toks = append(toks, utok{kind: utokNumber, text: expr[i:j]})
			i = j
		case c == '-' && i+1 < len(expr) && isUnitLetter(expr[i+1]):
			// the moment-unit join: kip-in reads back as kip*in
			toks = append(toks, utok{kind: utokOp, text: "*"})
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
				j++
			}
			toks = append(toks, utok{kind: utokNumber, text: expr[i:j]})
			i = j
		case isUnitLetter(c):
			j := i
			for j < len(expr) && isUnitLetter(expr[j]) {
				j++
			}
			for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
				j++
			}
			toks = append(toks, utok{kind: utokSymbol, text: expr[i:j]})
			i = j
		default:
			return nil, false
		}
	}
	return toks, true
}

func isUnitLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// expandComposites replaces every whole-token occurrence of a composite unit
// with its parenthesized expansion, repeating until stable.
func expandComposites(toks []utok) []utok {
	for pass := 0; pass < 16; pass++ {
		expanded := false
		var out []utok
		for _, t := range toks {
			if t.kind == utokSymbol {
				if def, ok := registry[t.text]; ok && def.Composite != "" {
					inner, ok := tokenizeExpr(def.Composite)
					if ok {
						out = append(out, utok{kind: utokOp, text: "("})
						out = append(out, inner...)
						out = append(out, utok{kind: utokOp, text: ")"})
						expanded = true
						continue
					}
				}
			}
			out = append(out, t)
		}
		toks = out
		if !expanded {
			break
		}
	}
	return toks
}

// normalizeSuffixes rewrites symbol tokens with trailing digits into explicit
// exponents whenever the alphabetic prefix is itself a registered unit.
func normalizeSuffixes(toks []utok) []utok {
	var out []utok
	for _, t := range toks {
		if t.kind == utokSymbol {
			if _, registered := registry[t.text]; !registered {
				alpha := len(t.text)
				for alpha > 0 && t.text[alpha-1] >= '0' && t.text[alpha-1] <= '9' {
					alpha--
				}
				if alpha > 0 && alpha < len(t.text) && IsValid(t.text[:alpha]) {
					out = append(out,
						utok{kind: utokSymbol, text: t.text[:alpha]},
						utok{kind: utokOp, text: "^"},
						utok{kind: utokNumber, text: t.text[alpha:]})
					continue
				}
			}
		}
		out = append(out, t)
	}
	return out
}

type exprParser struct {
	toks []utok
	pos  int
}

func (p *exprParser) peek() (utok, bool) {
	if p.pos >= len(p.toks) {
		return utok{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) next() (utok, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

type termAcc struct {
	order []string
	exps  map[string]int
}

func (a *termAcc) add(symbol string, exp int) {
	if _, seen := a.exps[symbol]; !seen {
		a.order = append(a.order, symbol)
	}
	a.exps[symbol] += exp
}

func parseTokens(toks []utok) ([]unitTerm, bool) {
	p := &exprParser{toks: toks}
	acc := &termAcc{exps: map[string]int{}}
	if !p.parseChain(1, acc) {
		return nil, false
	}
	if p.pos != len(p.toks) {
		return nil, false
	}
	terms := make([]unitTerm, 0, len(acc.order))
	for _, sym := range acc.order {
		terms = append(terms, unitTerm{symbol: sym, exp: acc.exps[sym]})
	}
	return terms, true
}

// parseChain consumes factor {(*|/) factor}. A factor after ÷ contributes
// negated exponents; the flip applies to that factor only.
func (p *exprParser) parseChain(sign int, acc *termAcc) bool {
	if !p.parseFactor(sign, acc) {
		return false
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != utokOp || (t.text != "*" && t.text != "/") {
			return true
		}
		p.next()
		factorSign := sign
		if t.text == "/" {
			factorSign = -sign
		}
		if !p.parseFactor(factorSign, acc) {
			return false
		}
	}
}

func (p *exprParser) parseFactor(sign int, acc *termAcc) bool {
	t, ok := p.next()
	if !ok {
		return false
	}
	switch {
	case t.kind == utokOp && t.text == "(":
		if !p.parseChain(sign, acc) {
			return false
		}
		closing, ok := p.next()
		return ok && closing.kind == utokOp && closing.text == ")"
	case t.kind == utokSymbol:
		exp, ok := p.parseExponent()
		if !ok {
			return false
		}
		acc.add(t.text, sign*exp)
		return true
	case t.kind == utokNumber:
		// bare scalar like the 1 in 1/s; contributes nothing
		_, ok := p.parseExponent()
		return ok
	default:
		return false
	}
}

// parseExponent consumes ^n when present, defaulting to 1 when absent.
// A dangling or non-numeric exponent fails the parse.
func (p *exprParser) parseExponent() (int, bool) {
	t, ok := p.peek()
	if !ok || t.kind != utokOp || t.text != "^" {
		return 1, true
	}
	p.next()
	num, ok := p.next()
	if !ok || num.kind != utokNumber {
		return 0, false
	}
	n, err := strconv.Atoi(num.text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// renderTerms writes the canonical display form: numerator terms joined with
// '-', then '/' and the denominator with positive exponents. Force-dimension
// symbols sort ahead of everything else (kip-in, not in-kip); remaining
// symbols keep first-occurrence order.
func renderTerms(terms []unitTerm) string {
	var num, den []unitTerm
	for _, t := range terms {
		switch {
		case t.exp > 0:
			num = append(num, t)
		case t.exp < 0:
			den = append(den, unitTerm{symbol: t.symbol, exp: -t.exp})
		}
	}

	forceFirst := func(ts []unitTerm) []unitTerm {
		var force, rest []unitTerm
		for _, t := range ts {
			if def, ok := registry[t.symbol]; ok && def.Dimension == Force {
				force = append(force, t)
			} else {
				rest = append(rest, t)
			}
		}
		return append(force, rest...)
	}
	num = forceFirst(num)
	den = forceFirst(den)

	render := func(ts []unitTerm, sep string) string {
		parts := make([]string, len(ts))
		for i, t := range ts {
			if t.exp == 1 {
				parts[i] = t.symbol
			} else {
				parts[i] = t.symbol + "^" + strconv.Itoa(t.exp)
			}
		}
		return strings.Join(parts, sep)
	}

	// multi-term denominators stay parenthesized so the display form reads
	// back unambiguously
	denStr := render(den, "*")
	if len(den) > 1 {
		denStr = "(" + denStr + ")"
	}

	switch {
	case len(num) == 0 && len(den) == 0:
		return ""
	case len(den) == 0:
		return render(num, "-")
	case len(num) == 0:
		return "1/" + denStr
	default:
		return render(num, "-") + "/" + denStr
	}
}
