package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	now   time.Time
	seq   int
	newID IDGenerator
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.now = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	s.seq = 0
	s.newID = func() string {
		s.seq++
		return fmt.Sprintf("entry-%d", s.seq)
	}
}

func (s *LedgerTestSuite) add(l Ledger, amount, category, desc string) (Ledger, Entry) {
	return Add(l, NewEntry{Amount: decimal.RequireFromString(amount), Category: category, Description: desc}, s.now, s.newID)
}

func (s *LedgerTestSuite) TestAdd_ReturnsNewLedger() {
	empty := Ledger{}

	one, entry := s.add(empty, "-12.50", " food ", "  Lunch at the cafe  ")

	s.Equal(0, empty.Len())
	s.Equal(1, one.Len())
	s.Equal("entry-1", entry.ID)
	s.Equal(s.now, entry.Date)
	s.Equal("food", entry.Category)
	s.Equal("Lunch at the cafe", entry.Description)
	s.False(entry.IsIncome())
}

func (s *LedgerTestSuite) TestAdd_DoesNotShareBackingArray() {
	base, _ := s.add(Ledger{}, "1", "a", "first")
	left, _ := s.add(base, "2", "b", "left")
	right, _ := s.add(base, "3", "c", "right")

	s.Equal("left", left.Entries()[1].Description)
	s.Equal("right", right.Entries()[1].Description)
	s.Equal(1, base.Len())
}

func (s *LedgerTestSuite) TestRemove() {
	l, _ := s.add(Ledger{}, "100", "salary", "March salary")
	l, second := s.add(l, "-40", "food", "Groceries")
	l, _ = s.add(l, "-10", "transport", "Bus ticket")

	removed, err := Remove(l, second.ID)
	s.Require().NoError(err)

	s.Equal(3, l.Len())
	s.Equal(2, removed.Len())
	_, found := removed.Find(second.ID)
	s.False(found)
	s.Equal("50.00", l.FormatTotal())
	s.Equal("90.00", removed.FormatTotal())
}

func (s *LedgerTestSuite) TestRemove_UnknownID() {
	l, _ := s.add(Ledger{}, "5", "misc", "thing")

	same, err := Remove(l, "missing")

	s.ErrorIs(err, ErrEntryNotFound)
	s.Equal(l.Entries(), same.Entries())
}

func (s *LedgerTestSuite) TestTotals() {
	s.Equal("0.00", Ledger{}.FormatTotal())

	l, _ := s.add(Ledger{}, "0.1", "a", "")
	l, _ = s.add(l, "0.2", "a", "")
	l, _ = s.add(l, "-1.005", "a", "")

	s.True(l.Total().Equal(decimal.RequireFromString("-0.705")))
	s.Equal("-0.71", l.FormatTotal())
}

func (s *LedgerTestSuite) TestRows() {
	l, _ := s.add(Ledger{}, "0", "gift", "Birthday money from grandma this year")
	l, _ = s.add(l, "-3", "coffee", "Latte")

	rows := l.Rows()

	s.Require().Len(rows, 2)
	s.Equal(Row{ID: "entry-1", Date: "2024-03-15 09:30:00", Category: "gift", ShortDescription: "Birthday money from grandma", Class: RowIncome}, rows[0])
	s.Equal(RowExpense, rows[1].Class)
	s.Equal("Latte", rows[1].ShortDescription)
}

func TestShortDescription(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"one", "one"},
		{"one two three four", "one two three four"},
		{"one two three four five six", "one two three four"},
		{"  spaced   out\twords here and more ", "spaced out words here"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortDescription(tt.in))
		})
	}
}

func TestUUIDGenerator(t *testing.T) {
	l, first := Add(Ledger{}, NewEntry{Amount: decimal.NewFromInt(1)}, time.Now(), UUIDGenerator)
	_, second := Add(l, NewEntry{Amount: decimal.NewFromInt(1)}, time.Now(), UUIDGenerator)

	require.Len(t, first.ID, 36)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestNew_CopiesInput(t *testing.T) {
	entries := []Entry{{ID: "a"}, {ID: "b"}}
	l := New(entries...)
	entries[0].ID = "changed"

	got := l.Entries()
	got[1].ID = "also changed"

	assert.Equal(t, "a", l.Entries()[0].ID)
	assert.Equal(t, "b", l.Entries()[1].ID)
}
