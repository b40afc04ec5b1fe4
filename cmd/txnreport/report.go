package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"txn-query/internal/calculator"
	"txn-query/internal/inventory"
	"txn-query/internal/ledger"
	"txn-query/internal/models"
	"txn-query/internal/query"
	"txn-query/internal/services"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// reporter writes sections to w. Styles are bound to w, so non-terminal writers get plain text.
type reporter struct {
	w            io.Writer
	headingStyle lipgloss.Style
	labelStyle   lipgloss.Style
	errorStyle   lipgloss.Style
}

func newReporter(w io.Writer) *reporter {
	renderer := lipgloss.NewRenderer(w)
	return &reporter{
		w:            w,
		headingStyle: renderer.NewStyle().Bold(true).Underline(true),
		labelStyle:   renderer.NewStyle().Faint(true),
		errorStyle:   renderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (r *reporter) heading(title string) {
	fmt.Fprintf(r.w, "\n%s\n", r.headingStyle.Render(title))
}

func (r *reporter) line(label string, value interface{}) {
	fmt.Fprintf(r.w, "%s %v\n", r.labelStyle.Render(label+":"), value)
}

func (r *reporter) result(label string, value interface{}, err error) {
	if err != nil {
		fmt.Fprintf(r.w, "%s %s\n", r.labelStyle.Render(label+":"), r.errorStyle.Render("error: "+err.Error()))
		return
	}
	r.line(label, value)
}

// queries prints every query over transactions. Date arguments follow the first record
// so the output stays meaningful for any input file.
func (r *reporter) queries(title string, transactions []models.Transaction) {
	r.heading(fmt.Sprintf("Transactions: %s (%d)", title, len(transactions)))

	r.line("unique types", query.UniqueTypes(transactions))
	r.line("total amount", query.TotalAmount(transactions))
	r.line("total debit amount", query.TotalDebitAmount(transactions))
	r.line("average amount", query.AverageAmount(transactions).StringFixed(2))
	r.line("dominant type", query.DominantType(transactions))
	r.line("debit ids", ids(query.ByType(transactions, models.TransactionTypeDebit)))
	r.line("credit ids", ids(query.ByType(transactions, models.TransactionTypeCredit)))
	r.line("descriptions", strings.Join(query.MapDescriptions(transactions), "; "))

	counts, err := query.MonthlyCounts(transactions)
	r.result("monthly counts", counts, err)

	month, err := query.MonthWithMostTransactions(transactions)
	r.result("busiest month", month, err)

	debitMonth, err := query.MonthWithMostDebitTransactions(transactions)
	r.result("busiest debit month", debitMonth, err)

	summary, err := query.Summarize(transactions)
	r.result("summary", fmt.Sprintf("%+v", summary), err)

	if len(transactions) == 0 {
		_, found := query.FindByID(transactions, "1")
		r.line("find id 1", found)
		r.line("similar merchants to \"Shop\"", query.SimilarMerchants(transactions, "Shop", services.DefaultSuggestionDistance))
		return
	}

	first := transactions[0]
	date, err := models.ParseCalendarDate(first.TransactionDate)
	if err != nil {
		r.result("first record date", nil, err)
		return
	}

	year, monthNum := date.Year, int(date.Month)
	byMonth, err := query.TotalAmountByDate(transactions, models.DateFilter{Year: &year, Month: &monthNum})
	r.result("total for "+date.MonthKey(), byMonth, err)

	monthStart := fmt.Sprintf("%s-01", date.MonthKey())
	monthEnd := time.Date(date.Year, date.Month+1, 0, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	inRange, err := query.InDateRange(transactions, monthStart, monthEnd)
	r.result(fmt.Sprintf("ids from %s to %s", monthStart, monthEnd), ids(inRange), err)

	before, err := query.BeforeDate(transactions, date.String())
	r.result("ids before "+date.String(), ids(before), err)

	r.line("ids at "+first.MerchantName, ids(query.ByMerchant(transactions, first.MerchantName)))

	lo := first.Amount.Div(decimal.NewFromInt(2))
	hi := first.Amount.Mul(decimal.NewFromInt(2))
	r.line(fmt.Sprintf("ids with amount %s..%s", lo, hi), ids(query.ByAmountRange(transactions, lo, hi)))

	found, ok := query.FindByID(transactions, first.TransactionID)
	r.line("find id "+first.TransactionID, fmt.Sprintf("%t %s", ok, found.Description))

	typo := first.MerchantName
	if len(typo) > 1 {
		typo = typo[:len(typo)-1]
	}
	r.line(fmt.Sprintf("similar merchants to %q", typo), query.SimilarMerchants(transactions, typo, services.DefaultSuggestionDistance))
}

func (r *reporter) calculatorDemo() {
	r.heading("Calculator")

	sessions := []struct {
		keys   string
		events []calculator.Event
	}{
		{"2+3*4=", []calculator.Event{calculator.Digit('2'), calculator.Op(calculator.OpAdd), calculator.Digit('3'), calculator.Op(calculator.OpMultiply), calculator.Digit('4'), calculator.Equals()}},
		{"7/0=", []calculator.Event{calculator.Digit('7'), calculator.Op(calculator.OpDivide), calculator.Digit('0'), calculator.Equals()}},
		{"1.5+DEL*2=", []calculator.Event{calculator.Digit('1'), calculator.Digit('.'), calculator.Digit('5'), calculator.Op(calculator.OpAdd), calculator.Delete(), calculator.Op(calculator.OpMultiply), calculator.Digit('2'), calculator.Equals()}},
	}

	for _, s := range sessions {
		r.line(s.keys, calculator.Run(s.events...).Display())
	}

	value, err := calculator.Evaluate("(1 + 2) * -3")
	r.result("(1 + 2) * -3", value, err)
}

func (r *reporter) ledgerDemo(now time.Time) {
	r.heading("Expense ledger")

	var l ledger.Ledger
	l, _ = ledger.Add(l, ledger.NewEntry{Amount: decimal.RequireFromString("1500"), Category: "salary", Description: "Monthly salary"}, now, ledger.UUIDGenerator)
	l, coffee := ledger.Add(l, ledger.NewEntry{Amount: decimal.RequireFromString("-4.75"), Category: "food", Description: "Coffee and a croissant on the way to work"}, now, ledger.UUIDGenerator)
	l, _ = ledger.Add(l, ledger.NewEntry{Amount: decimal.RequireFromString("-60.20"), Category: "transport", Description: "Monthly bus pass"}, now, ledger.UUIDGenerator)

	for _, row := range l.Rows() {
		fmt.Fprintf(r.w, "  %-8s %-10s %s\n", row.Class, row.Category, row.ShortDescription)
	}
	r.line("total", l.FormatTotal())

	l, err := ledger.Remove(l, coffee.ID)
	r.result("total after removing coffee", l.FormatTotal(), err)

	_, err = ledger.Remove(l, coffee.ID)
	r.result("remove again", nil, err)
}

func (r *reporter) inventoryDemo() {
	r.heading("Inventory")

	potion := inventory.NewItem("Healing Potion", 0.5, inventory.RarityCommon)
	r.line("potion", potion.Info())
	r.line("potion reweighed", potion.WithWeight(0.6).Info())

	sword := inventory.NewWeapon("Steel Sword", 3.5, inventory.RarityRare, 25, 80)
	r.line("sword", sword.Info())
	sword, _ = sword.Use()
	r.line("sword after use", sword.Weapon.Durability)
	sword, _ = sword.Repair()
	r.line("sword after repair", sword.Weapon.Durability)

	axe := inventory.NewWeapon("Battle Axe", 5.0, inventory.RarityLegendary, 40, 10)
	r.line("axe", axe.Info())
	for i := 1; i <= 2; i++ {
		var err error
		axe, err = axe.Use()
		if errors.Is(err, inventory.ErrBroken) {
			r.result(fmt.Sprintf("axe use %d", i), nil, err)
			continue
		}
		r.line(fmt.Sprintf("axe use %d", i), axe.Weapon.Durability)
	}

	_, err := potion.Use()
	r.result("use potion", nil, err)
}

func ids(transactions []models.Transaction) []string {
	out := make([]string, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.TransactionID)
	}
	return out
}
