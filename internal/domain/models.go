// internal/domain/models.go
package domain

// Category is one spending bucket, identified by its key.
type Category struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// RewardRule describes how one card rewards one category.
// Cap is the maximum annual spend eligible for Rate; zero means uncapped.
// Spend beyond the cap earns the card's base rate.
type RewardRule struct {
	Rate float64 `json:"rate"`
	Cap  float64 `json:"cap,omitempty"`
}

// Card is immutable reference data loaded once at startup.
// Rules maps category keys to category-specific rules; categories without
// an entry fall back to BaseRate, uncapped.
type Card struct {
	Name          string                `json:"name"`
	ReferenceLink string                `json:"reference_link,omitempty"`
	BaseRate      float64               `json:"base_rate"`
	Rules         map[string]RewardRule `json:"rules,omitempty"`
}

// SpendingProfile maps category keys to monthly spend amounts.
// Absent categories are treated as zero spend.
type SpendingProfile map[string]float64

// Allocation routes one category's full monthly spend to a single card.
// Cashback is the annual cashback earned by that routing.
type Allocation struct {
	CategoryKey  string  `json:"category"`
	CategoryName string  `json:"-"`
	Card         string  `json:"card"`
	MonthlySpend float64 `json:"-"`
	Cashback     float64 `json:"amount"`
}

// PlanResult is the allocation outcome for one named card subset.
type PlanResult struct {
	Label        string       `json:"label"`
	TotalSavings float64      `json:"total_savings"`
	Allocations  []Allocation `json:"allocations"`
}

// Result is the plan with the highest total annual cashback among all
// plans evaluated.
type Result struct {
	TotalSavings float64      `json:"total_savings"`
	ChosenPlan   string       `json:"chosen_plan"`
	Allocations  []Allocation `json:"results"`
}
