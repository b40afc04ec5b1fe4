package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"txn-query/internal/models"
	"txn-query/internal/services"
)

func main() {
	file := flag.String("file", "", "JSON array of transactions; the built-in sample set is used when empty")
	demos := flag.Bool("demos", true, "also print the calculator, ledger and inventory demos")
	flag.Parse()

	transactions, source, err := loadTransactions(*file)
	if err != nil {
		log.Fatalf("Failed to load transactions: %v", err)
	}

	r := newReporter(os.Stdout)
	r.queries(source, transactions)
	r.queries("empty set", []models.Transaction{})
	r.queries("single transaction", transactions[:min(1, len(transactions))])

	if *demos {
		r.calculatorDemo()
		r.ledgerDemo(time.Now())
		r.inventoryDemo()
	}
}

// loadTransactions reads and validates path, or returns the sample set when path is empty
func loadTransactions(path string) ([]models.Transaction, string, error) {
	if path == "" {
		return services.SampleTransactions(), "sample set", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	transactions, err := decodeTransactions(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return transactions, path, nil
}

func decodeTransactions(r io.Reader) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := json.NewDecoder(r).Decode(&transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return transactions, nil
}
