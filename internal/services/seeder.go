package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"txn-query/internal/repositories"
)

// SeedWindow is how far back generated transactions are dated
const SeedWindow = 365 * 24 * time.Hour

// SeedIfEmpty imports count generated transactions dated within SeedWindow before now,
// but only when the store holds nothing yet. It returns how many records were written.
func SeedIfEmpty(
	ctx context.Context,
	repo repositories.TransactionRepositoryInterface,
	service TransactionQueryServiceInterface,
	generator TransactionGeneratorInterface,
	count int,
	now time.Time,
) (int, error) {
	if count <= 0 {
		return 0, nil
	}

	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count stored transactions: %w", err)
	}
	if existing > 0 {
		slog.Info("Skipping seed, store is not empty", "stored", existing)
		return 0, nil
	}

	transactions := generator.Generate(count, now.Add(-SeedWindow), now)

	imported, err := service.Import(ctx, transactions)
	if err != nil {
		return 0, fmt.Errorf("failed to seed transactions: %w", err)
	}

	slog.Info("Seeded transactions", "count", imported)
	return imported, nil
}
