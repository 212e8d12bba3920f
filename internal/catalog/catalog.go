// Package catalog holds the static reference data: the known cards, the
// known spending categories, and rule resolution with base-rate fallback.
// A Catalog is validated once at construction and read-only afterwards,
// so it is safe to share across concurrent requests.
package catalog

import (
	"fmt"

	"cashback-optimizer/internal/domain"
)

type Catalog struct {
	categories []domain.Category
	cards      []domain.Card
	catIndex   map[string]int
	cardIndex  map[string]int
}

// New builds a catalog from categories and cards, rejecting malformed
// reference data. A failure here is a configuration error and should be
// treated as fatal by callers.
func New(categories []domain.Category, cards []domain.Card) (*Catalog, error) {
	c := &Catalog{
		categories: categories,
		cards:      cards,
		catIndex:   make(map[string]int, len(categories)),
		cardIndex:  make(map[string]int, len(cards)),
	}

	for i, cat := range categories {
		if cat.Key == "" {
			return nil, fmt.Errorf("category %d: empty key", i)
		}
		if cat.DisplayName == "" {
			return nil, fmt.Errorf("category %q: empty display name", cat.Key)
		}
		if _, exists := c.catIndex[cat.Key]; exists {
			return nil, fmt.Errorf("duplicate category %q", cat.Key)
		}
		c.catIndex[cat.Key] = i
	}

	for i, card := range cards {
		if card.Name == "" {
			return nil, fmt.Errorf("card %d: empty name", i)
		}
		if _, exists := c.cardIndex[card.Name]; exists {
			return nil, fmt.Errorf("duplicate card %q", card.Name)
		}
		if card.BaseRate < 0 || card.BaseRate > 1 {
			return nil, fmt.Errorf("card %q: base rate %v out of range", card.Name, card.BaseRate)
		}
		for key, rule := range card.Rules {
			if _, known := c.catIndex[key]; !known {
				return nil, fmt.Errorf("card %q: rule for unknown category %q", card.Name, key)
			}
			if rule.Rate < 0 || rule.Rate > 1 {
				return nil, fmt.Errorf("card %q: rate %v for %q out of range", card.Name, rule.Rate, key)
			}
			if rule.Cap < 0 {
				return nil, fmt.Errorf("card %q: negative cap for %q", card.Name, key)
			}
		}
		c.cardIndex[card.Name] = i
	}

	return c, nil
}

// Categories returns the fixed category set in catalog order.
// Callers must not modify the returned slice.
func (c *Catalog) Categories() []domain.Category {
	return c.categories
}

// Cards returns all known cards. Callers must not modify the returned slice.
func (c *Catalog) Cards() []domain.Card {
	return c.cards
}

// Card looks up a card by name.
func (c *Catalog) Card(name string) (domain.Card, bool) {
	i, ok := c.cardIndex[name]
	if !ok {
		return domain.Card{}, false
	}
	return c.cards[i], true
}

// HasCategory reports whether key names a known category.
func (c *Catalog) HasCategory(key string) bool {
	_, ok := c.catIndex[key]
	return ok
}

// ResolveRule returns the effective reward rule for a card and category:
// the category-specific rule if present, else the card's base rate with
// no cap. It never fails for a card from this catalog.
func (c *Catalog) ResolveRule(card domain.Card, categoryKey string) domain.RewardRule {
	if rule, ok := card.Rules[categoryKey]; ok {
		return rule
	}
	return domain.RewardRule{Rate: card.BaseRate}
}
