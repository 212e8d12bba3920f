// internal/optimizer/plan.go
//
// Plan selection follows the strategy pattern: a Strategy enumerates the
// candidate card subsets for a selection, and the Selector re-runs the
// allocator on each candidate and keeps the best total. New subset
// heuristics slot in without touching the allocator.
package optimizer

import (
	"fmt"

	"cashback-optimizer/internal/catalog"
	"cashback-optimizer/internal/domain"
)

// BaselinePlanLabel names the plan that uses every selected card.
const BaselinePlanLabel = "All selected cards"

// Plan is one candidate card subset to evaluate.
type Plan struct {
	Label string
	Cards []string
}

// Strategy enumerates the candidate plans for a card selection. The first
// plan is treated as the baseline: ties on total cashback resolve to the
// earliest plan, so a reduced subset is only chosen when it strictly wins.
type Strategy func(selection []string) []Plan

// FullSelection is the default strategy: a single plan using every
// selected card.
func FullSelection(selection []string) []Plan {
	return []Plan{{Label: BaselinePlanLabel, Cards: selection}}
}

// TrimIdleCards returns a strategy that evaluates, alongside the baseline,
// the subset of selected cards that win at least one category under the
// baseline allocation. A reduced subset can never out-earn the baseline,
// so the baseline label is still chosen; the reduced plan exists to report
// the fewer-cards trade-off without conflating it with the winner.
func TrimIdleCards(cat *catalog.Catalog, profile domain.SpendingProfile) Strategy {
	return func(selection []string) []Plan {
		plans := FullSelection(selection)
		rows, err := Allocate(cat, profile, selection)
		if err != nil {
			return plans
		}

		winning := make(map[string]bool, len(rows))
		for _, row := range rows {
			winning[row.Card] = true
		}
		winners := make([]string, 0, len(winning))
		for _, name := range selection {
			if winning[name] {
				winners = append(winners, name)
			}
		}
		if len(winners) == 0 || len(winners) == len(selection) {
			return plans
		}
		return append(plans, Plan{
			Label: fmt.Sprintf("Top %d cards", len(winners)),
			Cards: winners,
		})
	}
}

// Selector evaluates candidate plans against a catalog and picks the one
// with the highest total annual cashback.
type Selector struct {
	catalog  *catalog.Catalog
	strategy Strategy
}

// NewSelector returns a selector using the FullSelection strategy.
func NewSelector(cat *catalog.Catalog) *Selector {
	return &Selector{catalog: cat, strategy: FullSelection}
}

// NewSelectorWithStrategy returns a selector using a custom strategy.
func NewSelectorWithStrategy(cat *catalog.Catalog, strategy Strategy) *Selector {
	return &Selector{catalog: cat, strategy: strategy}
}

// Select runs the allocator under every candidate plan and returns the
// result of the best one. An empty selection surfaces ErrNoCardsAvailable;
// invalid input fails the whole request with no partial results.
func (s *Selector) Select(profile domain.SpendingProfile, selection []string) (*domain.Result, error) {
	strategy := s.strategy
	if strategy == nil {
		strategy = FullSelection
	}
	plans := strategy(selection)
	if len(plans) == 0 {
		plans = FullSelection(selection)
	}

	var best *domain.PlanResult
	for _, plan := range plans {
		rows, err := Allocate(s.catalog, profile, plan.Cards)
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, row := range rows {
			total += row.Cashback
		}
		if best == nil || total > best.TotalSavings {
			best = &domain.PlanResult{Label: plan.Label, TotalSavings: total, Allocations: rows}
		}
	}

	return &domain.Result{
		TotalSavings: best.TotalSavings,
		ChosenPlan:   best.Label,
		Allocations:  best.Allocations,
	}, nil
}
