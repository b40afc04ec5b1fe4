package ledger

// RowClass tags a rendered row as income or expense
type RowClass string

const (
	RowIncome  RowClass = "income"
	RowExpense RowClass = "expense"

	rowDateLayout = "2006-01-02 15:04:05"
)

// Row is a render-ready view of one entry
type Row struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	Category         string   `json:"category"`
	ShortDescription string   `json:"short_description"`
	Class            RowClass `json:"class"`
}

// RowFor renders e
func RowFor(e Entry) Row {
	class := RowExpense
	if e.IsIncome() {
		class = RowIncome
	}

	return Row{
		ID:               e.ID,
		Date:             e.Date.Format(rowDateLayout),
		Category:         e.Category,
		ShortDescription: ShortDescription(e.Description),
		Class:            class,
	}
}
