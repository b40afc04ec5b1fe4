package services

import (
	"strconv"
	"time"

	"txn-query/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Merchant categories used for amount ranges and descriptions
const (
	CategoryGroceries      = "groceries"
	CategoryDining         = "dining"
	CategoryTransportation = "transportation"
	CategoryShopping       = "shopping"
	CategoryEntertainment  = "entertainment"
	CategoryBillsUtilities = "bills_utilities"
	CategoryHealthcare     = "healthcare"
	CategoryTravel         = "travel"
)

const debitShare = 0.65

// MerchantInfo describes one merchant in the generator pool
type MerchantInfo struct {
	Name     string
	Category string
}

type transactionGenerator struct {
	merchantPool []MerchantInfo
	faker        *gofakeit.Faker
	sequence     int
}

// NewTransactionGenerator creates a generator. A zero seed draws a random one; any other seed
// reproduces the same sequence.
func NewTransactionGenerator(seed uint64) TransactionGeneratorInterface {
	return &transactionGenerator{
		merchantPool: initializeMerchantPool(),
		faker:        gofakeit.New(seed),
	}
}

func initializeMerchantPool() []MerchantInfo {
	return []MerchantInfo{
		{"Walmart Supercenter", CategoryGroceries},
		{"Kroger", CategoryGroceries},
		{"Whole Foods Market", CategoryGroceries},
		{"Trader Joe's", CategoryGroceries},
		{"Starbucks", CategoryDining},
		{"Chipotle Mexican Grill", CategoryDining},
		{"Panera Bread", CategoryDining},
		{"Olive Garden", CategoryDining},
		{"Uber", CategoryTransportation},
		{"Shell", CategoryTransportation},
		{"Amtrak", CategoryTransportation},
		{"Amazon.com", CategoryShopping},
		{"Best Buy", CategoryShopping},
		{"IKEA", CategoryShopping},
		{"Netflix", CategoryEntertainment},
		{"Spotify", CategoryEntertainment},
		{"AMC Theaters", CategoryEntertainment},
		{"Verizon Wireless", CategoryBillsUtilities},
		{"Duke Energy", CategoryBillsUtilities},
		{"CVS Pharmacy", CategoryHealthcare},
		{"Walgreens", CategoryHealthcare},
		{"Delta Air Lines", CategoryTravel},
		{"Marriott Hotels", CategoryTravel},
	}
}

// GetMerchantPool returns the merchant pool
func (g *transactionGenerator) GetMerchantPool() []MerchantInfo {
	return g.merchantPool
}

// Generate returns count transactions dated inside [startDate, endDate], in generation order.
// Transaction ids continue across calls on the same generator.
func (g *transactionGenerator) Generate(count int, startDate, endDate time.Time) []models.Transaction {
	if count <= 0 {
		return []models.Transaction{}
	}
	if endDate.Before(startDate) {
		startDate, endDate = endDate, startDate
	}

	transactions := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		transactions = append(transactions, g.generateOne(startDate, endDate))
	}
	return transactions
}

func (g *transactionGenerator) generateOne(startDate, endDate time.Time) models.Transaction {
	g.sequence++
	merchant := g.merchantPool[g.faker.IntN(len(g.merchantPool))]

	txnType := models.TransactionTypeCredit
	description := "Refund - " + merchant.Name
	if g.faker.Float64() < debitShare {
		txnType = models.TransactionTypeDebit
		description = "Purchase at " + merchant.Name
	}

	return models.Transaction{
		TransactionID:   strconv.Itoa(g.sequence),
		TransactionDate: g.generateDate(startDate, endDate).Format("2006-01-02"),
		Amount:          g.generateAmount(merchant.Category),
		TransactionType: txnType,
		Description:     description,
		MerchantName:    merchant.Name,
		CardType:        g.faker.RandomString(models.SampleCardTypes),
	}
}

func (g *transactionGenerator) generateDate(startDate, endDate time.Time) time.Time {
	if !endDate.After(startDate) {
		return startDate
	}
	return g.faker.DateRange(startDate, endDate)
}

func (g *transactionGenerator) generateAmount(category string) decimal.Decimal {
	minValue, maxValue := amountRange(category)
	return decimal.NewFromFloat(g.faker.Float64Range(minValue, maxValue)).Round(2)
}

func amountRange(category string) (float64, float64) {
	ranges := map[string][2]float64{
		CategoryGroceries:      {15.00, 250.00},
		CategoryDining:         {8.00, 120.00},
		CategoryTransportation: {10.00, 80.00},
		CategoryShopping:       {25.00, 450.00},
		CategoryEntertainment:  {10.00, 60.00},
		CategoryBillsUtilities: {50.00, 250.00},
		CategoryHealthcare:     {20.00, 300.00},
		CategoryTravel:         {100.00, 800.00},
	}

	if r, exists := ranges[category]; exists {
		return r[0], r[1]
	}
	return 10.00, 100.00
}

// SampleTransactions returns the fixed three-record data set used by the report CLI and tests
func SampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			TransactionID:   "1",
			TransactionDate: "2019-01-01",
			Amount:          decimal.NewFromInt(100),
			TransactionType: models.TransactionTypeDebit,
			Description:     "Grocery shopping",
			MerchantName:    "Supermarket",
			CardType:        "Visa",
		},
		{
			TransactionID:   "2",
			TransactionDate: "2019-02-02",
			Amount:          decimal.NewFromInt(50),
			TransactionType: models.TransactionTypeCredit,
			Description:     "Product return",
			MerchantName:    "Online Store",
			CardType:        "MasterCard",
		},
		{
			TransactionID:   "3",
			TransactionDate: "2019-01-03",
			Amount:          decimal.NewFromInt(75),
			TransactionType: models.TransactionTypeDebit,
			Description:     "Dinner with friends",
			MerchantName:    "Restaurant",
			CardType:        "Visa",
		},
	}
}
