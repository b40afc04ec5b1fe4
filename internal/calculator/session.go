package calculator

import "strings"

// ErrorMarker is shown in the display after a failed evaluation
const ErrorMarker = "Error"

// Kind identifies what a key press does
type Kind int

const (
	KindDigit Kind = iota
	KindOperator
	KindClear
	KindDelete
	KindEquals
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindOperator:
		return "operator"
	case KindClear:
		return "clear"
	case KindDelete:
		return "delete"
	case KindEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// Operator is one of the four arithmetic keys
type Operator byte

const (
	OpAdd      Operator = '+'
	OpSubtract Operator = '-'
	OpMultiply Operator = '*'
	OpDivide   Operator = '/'
)

// IsValid reports whether o is one of the four arithmetic operators
func (o Operator) IsValid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Event is a single key press. Digit is read for KindDigit and Operator for KindOperator.
type Event struct {
	Kind     Kind
	Digit    byte
	Operator Operator
}

// Digit returns the event for a digit or decimal point key
func Digit(d byte) Event { return Event{Kind: KindDigit, Digit: d} }

// Op returns the event for an operator key
func Op(o Operator) Event { return Event{Kind: KindOperator, Operator: o} }

// Clear returns the event for the clear key
func Clear() Event { return Event{Kind: KindClear} }

// Delete returns the event for the backspace key
func Delete() Event { return Event{Kind: KindDelete} }

// Equals returns the event for the equals key
func Equals() Event { return Event{Kind: KindEquals} }

// Session is the calculator state between key presses
type Session struct {
	Expression string
	Failed     bool
}

// Display is what the calculator screen shows
func (s Session) Display() string {
	if s.Failed {
		return ErrorMarker
	}
	if s.Expression == "" {
		return "0"
	}
	return s.Expression
}

// Apply returns the session after e. Any key pressed after a failure starts from an empty expression.
func Apply(s Session, e Event) Session {
	if s.Failed {
		s = Session{}
	}

	switch e.Kind {
	case KindDigit:
		if (e.Digit >= '0' && e.Digit <= '9') || e.Digit == '.' {
			s.Expression += string(e.Digit)
		}

	case KindOperator:
		if e.Operator.IsValid() && s.Expression != "" && !endsWithOperator(s.Expression) {
			s.Expression += string(e.Operator)
		}

	case KindClear:
		s.Expression = ""

	case KindDelete:
		if s.Expression != "" {
			s.Expression = s.Expression[:len(s.Expression)-1]
		}

	case KindEquals:
		if s.Expression == "" {
			return s
		}
		result, err := Evaluate(s.Expression)
		if err != nil {
			return Session{Failed: true}
		}
		s.Expression = result.String()
	}

	return s
}

// Run applies events in order starting from an empty session
func Run(events ...Event) Session {
	var s Session
	for _, e := range events {
		s = Apply(s, e)
	}
	return s
}

func endsWithOperator(expr string) bool {
	return strings.ContainsAny(expr[len(expr)-1:], "+-*/")
}
