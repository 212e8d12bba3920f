// internal/catalog/builtin.go
package catalog

import "cashback-optimizer/internal/domain"

// Built-in category set. Fixed for a deployment; the keys are what
// spending profiles and card rules reference.
var builtinCategories = []domain.Category{
	{Key: "dining", DisplayName: "Dining"},
	{Key: "grocery", DisplayName: "Grocery"},
	{Key: "gas_station", DisplayName: "Gas Station"},
	{Key: "pharmacy", DisplayName: "Pharmacy"},
	{Key: "travel_hotels", DisplayName: "Travel & Hotels"},
	{Key: "education", DisplayName: "Education"},
	{Key: "medical_care", DisplayName: "Medical Care"},
	{Key: "online_shopping_local", DisplayName: "Online Shopping (Local)"},
	{Key: "international_spend_non_eur", DisplayName: "International Spend (Non-EUR)"},
	{Key: "other_local_spend", DisplayName: "Other Local Spend"},
}

// Built-in card set. Rates are fractions of spend; caps are annual spend
// amounts eligible for the category rate, converted from each issuer's
// published monthly cashback limits.
var builtinCards = []domain.Card{
	{
		Name:          "SNB Premium Cashback",
		ReferenceLink: "https://www.alahli.com/en/pages/personal-banking/credit-cards/alahli-cashback-premium-credit-card",
		BaseRate:      0.007,
		Rules: map[string]domain.RewardRule{
			"gas_station":                 {Rate: 0.11, Cap: 10900},
			"dining":                      {Rate: 0.05, Cap: 48000},
			"grocery":                     {Rate: 0.05, Cap: 48000},
			"pharmacy":                    {Rate: 0.05, Cap: 48000},
			"international_spend_non_eur": {Rate: 0.02},
		},
	},
	{
		Name:          "Alrajhi Platinum Cashback Plus",
		ReferenceLink: "https://www.alrajhibank.com.sa/en/Personal/Cards/Cashback-Cards/Platinum-Cashback-Plus",
		BaseRate:      0.005,
		Rules: map[string]domain.RewardRule{
			"dining":                      {Rate: 0.10, Cap: 24000},
			"grocery":                     {Rate: 0.06, Cap: 40000},
			"online_shopping_local":       {Rate: 0.02, Cap: 30000},
			"international_spend_non_eur": {Rate: 0.015},
		},
	},
	{
		Name:          "Mazeed Platinum Cashback",
		ReferenceLink: "https://www.emiratesnbd.com.sa/en/cards/credit-cards/mazeed-platinum-credit-card",
		BaseRate:      0.005,
		Rules: map[string]domain.RewardRule{
			"dining":        {Rate: 0.10},
			"travel_hotels": {Rate: 0.02},
			"grocery":       {Rate: 0.05},
			"education":     {Rate: 0.05},
			"medical_care":  {Rate: 0.05},
		},
	},
	{
		Name:          "BSF Lifestyle",
		ReferenceLink: "https://bsf.sa/english/personal/cards/credit/lifestyle-credit-card/lifestyle",
		BaseRate:      0.005,
		Rules: map[string]domain.RewardRule{
			"dining":        {Rate: 0.10, Cap: 30000},
			"grocery":       {Rate: 0.03, Cap: 100000},
			"travel_hotels": {Rate: 0.03, Cap: 100000},
			"medical_care":  {Rate: 0.02, Cap: 150000},
			"education":     {Rate: 0.02, Cap: 150000},
		},
	},
	{
		Name:          "SAIB Cashback",
		ReferenceLink: "https://www.saib.com.sa/ar/platinum-cashback-credit-card",
		BaseRate:      0.005,
		Rules: map[string]domain.RewardRule{
			"grocery":     {Rate: 0.03, Cap: 40000},
			"education":   {Rate: 0.03, Cap: 80000},
			"dining":      {Rate: 0.03, Cap: 80000},
			"gas_station": {Rate: 0.03, Cap: 40000},
		},
	},
	{
		Name:          "SABB Cashback",
		ReferenceLink: "https://www.sab.com/en/personal/compare-credit-cards/cashback-visa-credit-card/",
		BaseRate:      0.001,
		Rules: map[string]domain.RewardRule{
			"grocery":     {Rate: 0.03, Cap: 40000},
			"dining":      {Rate: 0.03, Cap: 80000},
			"gas_station": {Rate: 0.03, Cap: 40000},
		},
	},
	{
		Name:          "Nayfat Platinum Cashback",
		ReferenceLink: "https://www.nayifat.com/en/credit-cards/platinum-cashback",
		BaseRate:      0.007,
		Rules: map[string]domain.RewardRule{
			"dining":                {Rate: 0.10},
			"medical_care":          {Rate: 0.05},
			"grocery":               {Rate: 0.03},
			"online_shopping_local": {Rate: 0.02},
			"travel_hotels":         {Rate: 0.015},
		},
	},
}

// Builtin returns the compiled-in catalog. The data is static and covered
// by tests, so a validation failure here is a programmer error.
func Builtin() *Catalog {
	c, err := New(builtinCategories, builtinCards)
	if err != nil {
		panic("catalog: built-in data invalid: " + err.Error())
	}
	return c
}
