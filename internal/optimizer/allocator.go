// Package optimizer is the allocation engine: it routes a monthly spending
// profile across a selection of cards to maximize annual cashback, one
// winning card per category, respecting per-category earning caps.
//
// Everything here is a pure function of its inputs. The catalog is
// read-only, so concurrent requests need no coordination.
package optimizer

import (
	"fmt"
	"math"
	"sort"

	"cashback-optimizer/internal/catalog"
	"cashback-optimizer/internal/domain"
)

const monthsPerYear = 12

// Allocate produces one allocation row per category with non-zero spend,
// naming the selected card that maximizes annual cashback for that
// category. Rows follow catalog category order, and ties break by higher
// category rate, then lexicographically smaller card name, so identical
// inputs always produce identical output.
func Allocate(cat *catalog.Catalog, profile domain.SpendingProfile, selection []string) ([]domain.Allocation, error) {
	cards, err := resolveSelection(cat, selection)
	if err != nil {
		return nil, err
	}
	if err := validateProfile(cat, profile); err != nil {
		return nil, err
	}

	var rows []domain.Allocation
	for _, category := range cat.Categories() {
		monthly := profile[category.Key]
		if monthly == 0 {
			continue
		}
		annual := monthly * monthsPerYear

		best := cards[0]
		bestRule := cat.ResolveRule(best, category.Key)
		bestCashback := annualCashback(best, bestRule, annual)
		for _, card := range cards[1:] {
			rule := cat.ResolveRule(card, category.Key)
			cashback := annualCashback(card, rule, annual)
			if betterChoice(cashback, rule, card.Name, bestCashback, bestRule, best.Name) {
				best, bestRule, bestCashback = card, rule, cashback
			}
		}

		rows = append(rows, domain.Allocation{
			CategoryKey:  category.Key,
			CategoryName: category.DisplayName,
			Card:         best.Name,
			MonthlySpend: monthly,
			Cashback:     bestCashback,
		})
	}
	return rows, nil
}

// annualCashback applies the rule's rate up to its annual spend cap; spend
// beyond the cap earns the card's base rate.
func annualCashback(card domain.Card, rule domain.RewardRule, annualSpend float64) float64 {
	if rule.Cap > 0 && annualSpend > rule.Cap {
		return rule.Cap*rule.Rate + (annualSpend-rule.Cap)*card.BaseRate
	}
	return annualSpend * rule.Rate
}

func betterChoice(cashback float64, rule domain.RewardRule, name string, bestCashback float64, bestRule domain.RewardRule, bestName string) bool {
	if cashback != bestCashback {
		return cashback > bestCashback
	}
	if rule.Rate != bestRule.Rate {
		return rule.Rate > bestRule.Rate
	}
	return name < bestName
}

func resolveSelection(cat *catalog.Catalog, selection []string) ([]domain.Card, error) {
	if len(selection) == 0 {
		return nil, fmt.Errorf("%w: selection is empty", ErrNoCardsAvailable)
	}
	cards := make([]domain.Card, 0, len(selection))
	seen := make(map[string]bool, len(selection))
	for _, name := range selection {
		if seen[name] {
			return nil, fmt.Errorf("%w: card %q selected twice", ErrInvalidInput, name)
		}
		seen[name] = true
		card, ok := cat.Card(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown card %q", ErrInvalidInput, name)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// validateProfile checks keys in sorted order so the reported error does
// not depend on map iteration order.
func validateProfile(cat *catalog.Catalog, profile domain.SpendingProfile) error {
	keys := make([]string, 0, len(profile))
	for key := range profile {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !cat.HasCategory(key) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, key)
		}
		amount := profile[key]
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return fmt.Errorf("%w: spend for %q must be a non-negative number", ErrInvalidInput, key)
		}
	}
	return nil
}
