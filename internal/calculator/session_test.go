package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Display(t *testing.T) {
	assert.Equal(t, "0", Session{}.Display())
	assert.Equal(t, "12+", Session{Expression: "12+"}.Display())
	assert.Equal(t, ErrorMarker, Session{Failed: true}.Display())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		display string
		failed  bool
	}{
		{"digits append", []Event{Digit('1'), Digit('2'), Digit('.'), Digit('5')}, "12.5", false},
		{"non digit ignored", []Event{Digit('1'), Digit('x')}, "1", false},
		{"operator on empty ignored", []Event{Op(OpSubtract), Digit('3')}, "3", false},
		{"double operator ignored", []Event{Digit('3'), Op(OpAdd), Op(OpMultiply), Digit('4')}, "3+4", false},
		{"invalid operator ignored", []Event{Digit('3'), Op(Operator('%'))}, "3", false},
		{"clear", []Event{Digit('9'), Op(OpAdd), Clear()}, "0", false},
		{"delete", []Event{Digit('9'), Op(OpAdd), Delete()}, "9", false},
		{"delete on empty", []Event{Delete()}, "0", false},
		{"equals evaluates", []Event{Digit('2'), Op(OpAdd), Digit('3'), Op(OpMultiply), Digit('4'), Equals()}, "14", false},
		{"equals on empty", []Event{Equals()}, "0", false},
		{"result continues", []Event{Digit('6'), Op(OpDivide), Digit('3'), Equals(), Op(OpAdd), Digit('1'), Equals()}, "3", false},
		{"trailing operator fails", []Event{Digit('6'), Op(OpAdd), Equals()}, ErrorMarker, true},
		{"division by zero fails", []Event{Digit('6'), Op(OpDivide), Digit('0'), Equals()}, ErrorMarker, true},
		{"key after error starts fresh", []Event{Digit('1'), Op(OpDivide), Digit('0'), Equals(), Digit('7')}, "7", false},
		{"malformed number fails", []Event{Digit('1'), Digit('.'), Digit('.'), Digit('2'), Equals()}, ErrorMarker, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Run(tt.events...)
			assert.Equal(t, tt.display, s.Display())
			assert.Equal(t, tt.failed, s.Failed)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := Session{Expression: "1+"}

	after := Apply(before, Digit('2'))

	assert.Equal(t, "1+", before.Expression)
	assert.Equal(t, "1+2", after.Expression)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "digit", KindDigit.String())
	assert.Equal(t, "equals", KindEquals.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
