package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashback-optimizer/internal/catalog"
	"cashback-optimizer/internal/domain"
)

func testCatalog(t *testing.T, cards ...domain.Card) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]domain.Category{
		{Key: "groceries", DisplayName: "Groceries"},
		{Key: "dining", DisplayName: "Dining"},
		{Key: "fuel", DisplayName: "Fuel"},
	}, cards)
	require.NoError(t, err)
	return cat
}

func TestAllocate_ZeroSpendProducesNoRows(t *testing.T) {
	cat := testCatalog(t,
		domain.Card{Name: "Card A", BaseRate: 0.01},
		domain.Card{Name: "Card B", BaseRate: 0.02},
	)

	rows, err := Allocate(cat, domain.SpendingProfile{"groceries": 0, "dining": 0}, []string{"Card A", "Card B"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAllocate_OneRowPerPositiveCategory(t *testing.T) {
	cat := testCatalog(t,
		domain.Card{Name: "Card A", BaseRate: 0.01, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.03},
		}},
		domain.Card{Name: "Card B", BaseRate: 0.02},
	)
	selection := []string{"Card A", "Card B"}

	rows, err := Allocate(cat, domain.SpendingProfile{
		"groceries": 500,
		"dining":    300,
		"fuel":      0,
	}, selection)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	seen := map[string]bool{}
	for _, row := range rows {
		assert.False(t, seen[row.CategoryKey], "duplicate row for %s", row.CategoryKey)
		seen[row.CategoryKey] = true
		assert.Contains(t, selection, row.Card)
	}
	assert.True(t, seen["groceries"])
	assert.True(t, seen["dining"])
}

func TestAllocate_RowsFollowCatalogOrder(t *testing.T) {
	cat := testCatalog(t, domain.Card{Name: "Card A", BaseRate: 0.01})

	rows, err := Allocate(cat, domain.SpendingProfile{
		"fuel":      100,
		"groceries": 100,
		"dining":    100,
	}, []string{"Card A"})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "groceries", rows[0].CategoryKey)
	assert.Equal(t, "dining", rows[1].CategoryKey)
	assert.Equal(t, "fuel", rows[2].CategoryKey)
}

func TestAllocate_CapExcessEarnsBaseRate(t *testing.T) {
	// $200/month = $2400/year. The first $1000 earns 5%, the remaining
	// $1400 earns the 1% base rate: 50 + 14 = 64.
	cat := testCatalog(t,
		domain.Card{Name: "Capped", BaseRate: 0.01, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.05, Cap: 1000},
		}},
	)

	rows, err := Allocate(cat, domain.SpendingProfile{"groceries": 200}, []string{"Capped"})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Capped", rows[0].Card)
	assert.InDelta(t, 64.0, rows[0].Cashback, 1e-9)
}

func TestAllocate_SpendWithinCapEarnsFullRate(t *testing.T) {
	cat := testCatalog(t,
		domain.Card{Name: "Capped", BaseRate: 0.01, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.05, Cap: 10000},
		}},
	)

	rows, err := Allocate(cat, domain.SpendingProfile{"groceries": 100}, []string{"Capped"})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.InDelta(t, 1200*0.05, rows[0].Cashback, 1e-9)
}

func TestAllocate_TieBreaksLexicographically(t *testing.T) {
	cardA := domain.Card{Name: "Alpha", BaseRate: 0, Rules: map[string]domain.RewardRule{
		"groceries": {Rate: 0.02},
	}}
	cardB := domain.Card{Name: "Beta", BaseRate: 0, Rules: map[string]domain.RewardRule{
		"groceries": {Rate: 0.02},
	}}

	// Both orders of the selection must pick the same card.
	for _, selection := range [][]string{{"Alpha", "Beta"}, {"Beta", "Alpha"}} {
		cat := testCatalog(t, cardA, cardB)
		rows, err := Allocate(cat, domain.SpendingProfile{"groceries": 100}, selection)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Alpha", rows[0].Card)
	}
}

func TestAllocate_TiePrefersHigherRate(t *testing.T) {
	// Both cards earn 300/year on $6000 annual spend, but Zeta's category
	// rate is higher, so it wins despite sorting after Apex.
	cat := testCatalog(t,
		domain.Card{Name: "Apex", BaseRate: 0, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.05},
		}},
		domain.Card{Name: "Zeta", BaseRate: 0, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.10, Cap: 3000},
		}},
	)

	rows, err := Allocate(cat, domain.SpendingProfile{"groceries": 500}, []string{"Apex", "Zeta"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Zeta", rows[0].Card)
}

func TestAllocate_Monotonicity(t *testing.T) {
	cat := testCatalog(t,
		domain.Card{Name: "Capped", BaseRate: 0.01, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.05, Cap: 12000},
		}},
		domain.Card{Name: "Flat", BaseRate: 0.02},
	)
	selection := []string{"Capped", "Flat"}

	total := func(monthly float64) float64 {
		rows, err := Allocate(cat, domain.SpendingProfile{"groceries": monthly, "dining": 200}, selection)
		require.NoError(t, err)
		sum := 0.0
		for _, row := range rows {
			sum += row.Cashback
		}
		return sum
	}

	prev := total(0)
	// Step across the cap boundary (monthly 1000 = annual 12000).
	for _, monthly := range []float64{100, 500, 999, 1000, 1001, 2000, 5000} {
		cur := total(monthly)
		assert.GreaterOrEqual(t, cur, prev, "total decreased at monthly=%v", monthly)
		prev = cur
	}
}

func TestAllocate_LeastBadCardStillAssigned(t *testing.T) {
	// No selected card earns anything for groceries, but the category is
	// still routed somewhere.
	cat := testCatalog(t,
		domain.Card{Name: "Card A", BaseRate: 0},
		domain.Card{Name: "Card B", BaseRate: 0},
	)

	rows, err := Allocate(cat, domain.SpendingProfile{"groceries": 400}, []string{"Card B", "Card A"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Card A", rows[0].Card)
	assert.Zero(t, rows[0].Cashback)
}

func TestAllocate_EmptySelection(t *testing.T) {
	cat := testCatalog(t, domain.Card{Name: "Card A", BaseRate: 0.01})

	_, err := Allocate(cat, domain.SpendingProfile{"groceries": 100}, nil)
	assert.ErrorIs(t, err, ErrNoCardsAvailable)
}

func TestAllocate_InvalidInput(t *testing.T) {
	cat := testCatalog(t, domain.Card{Name: "Card A", BaseRate: 0.01})

	tests := []struct {
		name      string
		profile   domain.SpendingProfile
		selection []string
	}{
		{
			name:      "unknown card",
			profile:   domain.SpendingProfile{"groceries": 100},
			selection: []string{"No Such Card"},
		},
		{
			name:      "duplicate card",
			profile:   domain.SpendingProfile{"groceries": 100},
			selection: []string{"Card A", "Card A"},
		},
		{
			name:      "unknown category",
			profile:   domain.SpendingProfile{"yachts": 100},
			selection: []string{"Card A"},
		},
		{
			name:      "negative spend",
			profile:   domain.SpendingProfile{"groceries": -5},
			selection: []string{"Card A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(cat, tt.profile, tt.selection)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	cat := testCatalog(t,
		domain.Card{Name: "Card A", BaseRate: 0.01, Rules: map[string]domain.RewardRule{
			"groceries": {Rate: 0.03, Cap: 5000},
			"dining":    {Rate: 0.05},
		}},
		domain.Card{Name: "Card B", BaseRate: 0.02},
	)
	profile := domain.SpendingProfile{"groceries": 500, "dining": 300, "fuel": 150}
	selection := []string{"Card A", "Card B"}

	first, err := Allocate(cat, profile, selection)
	require.NoError(t, err)
	second, err := Allocate(cat, profile, selection)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
