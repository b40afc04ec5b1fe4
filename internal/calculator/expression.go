package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidExpression is returned for anything that is not a well-formed arithmetic expression
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrDivisionByZero is returned when a divisor evaluates to zero
	ErrDivisionByZero = errors.New("division by zero")
)

// Evaluate computes an arithmetic expression over decimal numbers.
//
// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | primary
//	primary = number | "(" expr ")"
//
// Whitespace between tokens is ignored.
func Evaluate(expression string) (decimal.Decimal, error) {
	p := &parser{input: expression}

	p.skipSpace()
	if p.done() {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}

	value, err := p.expr()
	if err != nil {
		return decimal.Zero, err
	}

	p.skipSpace()
	if !p.done() {
		return decimal.Zero, p.unexpected()
	}

	return value, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.done() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) unexpected() error {
	if p.done() {
		return fmt.Errorf("%w: unexpected end of input", ErrInvalidExpression)
	}
	return fmt.Errorf("%w: unexpected %q at position %d", ErrInvalidExpression, p.input[p.pos], p.pos)
}

func (p *parser) expr() (decimal.Decimal, error) {
	left, err := p.term()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++

		right, err := p.term()
		if err != nil {
			return decimal.Zero, err
		}

		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

func (p *parser) term() (decimal.Decimal, error) {
	left, err := p.unary()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		p.skipSpace()
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++

		right, err := p.unary()
		if err != nil {
			return decimal.Zero, err
		}

		if op == '*' {
			left = left.Mul(right)
			continue
		}

		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		left = left.Div(right)
	}
}

func (p *parser) unary() (decimal.Decimal, error) {
	p.skipSpace()

	switch p.peek() {
	case '-':
		p.pos++
		value, err := p.unary()
		if err != nil {
			return decimal.Zero, err
		}
		return value.Neg(), nil
	case '+':
		p.pos++
		return p.unary()
	}

	return p.primary()
}

func (p *parser) primary() (decimal.Decimal, error) {
	p.skipSpace()

	if p.peek() == '(' {
		p.pos++
		value, err := p.expr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return decimal.Zero, p.unexpected()
		}
		p.pos++
		return value, nil
	}

	return p.number()
}

// number reads digits with at most one decimal point and at least one digit
func (p *parser) number() (decimal.Decimal, error) {
	start := p.pos
	digits, dots := 0, 0

	for !p.done() {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' {
			dots++
		} else {
			break
		}
		p.pos++
	}

	if digits == 0 || dots > 1 {
		p.pos = start
		if digits > 0 || dots > 0 {
			return decimal.Zero, fmt.Errorf("%w: malformed number at position %d", ErrInvalidExpression, start)
		}
		return decimal.Zero, p.unexpected()
	}

	literal := p.input[start:p.pos]
	if strings.HasPrefix(literal, ".") {
		literal = "0" + literal
	}
	if strings.HasSuffix(literal, ".") {
		literal += "0"
	}

	value, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return value, nil
}
