package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEntryNotFound is returned when removing an id the ledger does not hold
var ErrEntryNotFound = errors.New("ledger entry not found")

const shortDescriptionWords = 4

// Entry is one recorded expense or income. Negative amounts are expenses.
type Entry struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// IsIncome reports whether the entry adds money, zero counts as income
func (e Entry) IsIncome() bool {
	return !e.Amount.IsNegative()
}

// NewEntry holds the user-supplied fields of an entry
type NewEntry struct {
	Amount      decimal.Decimal
	Category    string
	Description string
}

// IDGenerator returns a fresh entry id
type IDGenerator func() string

// UUIDGenerator issues random UUIDv4 ids
func UUIDGenerator() string {
	return uuid.NewString()
}

// Ledger is an ordered, immutable list of entries. The zero value is an empty ledger.
type Ledger struct {
	entries []Entry
}

// New returns a ledger holding a copy of entries
func New(entries ...Entry) Ledger {
	return Ledger{entries: append([]Entry(nil), entries...)}
}

// Entries returns a copy of the entries in insertion order
func (l Ledger) Entries() []Entry {
	return append([]Entry{}, l.entries...)
}

// Len returns the number of entries
func (l Ledger) Len() int {
	return len(l.entries)
}

// Find returns the entry with the given id
func (l Ledger) Find(id string) (Entry, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Total sums every amount
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.Amount)
	}
	return total
}

// FormatTotal renders the total with two decimals
func (l Ledger) FormatTotal() string {
	return l.Total().StringFixed(2)
}

// Rows renders every entry in insertion order
func (l Ledger) Rows() []Row {
	rows := make([]Row, 0, len(l.entries))
	for _, e := range l.entries {
		rows = append(rows, RowFor(e))
	}
	return rows
}

// Add returns a ledger with a new entry appended, dated now and named by newID
func Add(l Ledger, in NewEntry, now time.Time, newID IDGenerator) (Ledger, Entry) {
	entry := Entry{
		ID:          newID(),
		Date:        now,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}

	entries := make([]Entry, len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	return Ledger{entries: append(entries, entry)}, entry
}

// Remove returns a ledger without the first entry matching id
func Remove(l Ledger, id string) (Ledger, error) {
	for i, e := range l.entries {
		if e.ID != id {
			continue
		}
		entries := make([]Entry, 0, len(l.entries)-1)
		entries = append(entries, l.entries[:i]...)
		entries = append(entries, l.entries[i+1:]...)
		return Ledger{entries: entries}, nil
	}
	return l, ErrEntryNotFound
}

// ShortDescription keeps the first four words, collapsing runs of whitespace
func ShortDescription(desc string) string {
	words := strings.Fields(desc)
	if len(words) > shortDescriptionWords {
		words = words[:shortDescriptionWords]
	}
	return strings.Join(words, " ")
}
