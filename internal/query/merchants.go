package query

import (
	"sort"
	"strings"

	"txn-query/internal/models"

	"github.com/agnivade/levenshtein"
)

// SimilarMerchants returns distinct merchant names within maxDistance edits of name,
// closest first. Comparison ignores case. Exact matches are excluded because
// ByMerchant already finds them.
func SimilarMerchants(transactions []models.Transaction, name string, maxDistance int) []string {
	type candidate struct {
		name     string
		distance int
	}

	target := strings.ToLower(strings.TrimSpace(name))
	seen := make(map[string]struct{})
	candidates := make([]candidate, 0)

	for _, t := range transactions {
		if t.MerchantName == "" || t.MerchantName == name {
			continue
		}
		if _, ok := seen[t.MerchantName]; ok {
			continue
		}
		seen[t.MerchantName] = struct{}{}

		distance := levenshtein.ComputeDistance(target, strings.ToLower(t.MerchantName))
		if distance <= maxDistance {
			candidates = append(candidates, candidate{name: t.MerchantName, distance: distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.name)
	}
	return names
}
