// internal/catalog/file.go
package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"cashback-optimizer/internal/domain"
)

type fileCategory struct {
	Key         string `yaml:"key"`
	DisplayName string `yaml:"display_name"`
}

type fileRule struct {
	Rate float64 `yaml:"rate"`
	Cap  float64 `yaml:"cap"`
}

type fileCard struct {
	Name          string              `yaml:"name"`
	ReferenceLink string              `yaml:"reference_link"`
	BaseRate      float64             `yaml:"base_rate"`
	Rules         map[string]fileRule `yaml:"rules"`
}

type catalogFile struct {
	Categories []fileCategory `yaml:"categories"`
	Cards      []fileCard     `yaml:"cards"`
}

// LoadFile reads a catalog definition from a YAML file so deployments can
// override the built-in card set. The result is validated the same way as
// the built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	categories := make([]domain.Category, len(f.Categories))
	for i, cat := range f.Categories {
		categories[i] = domain.Category{Key: cat.Key, DisplayName: cat.DisplayName}
	}

	cards := make([]domain.Card, len(f.Cards))
	for i, card := range f.Cards {
		rules := make(map[string]domain.RewardRule, len(card.Rules))
		for key, rule := range card.Rules {
			rules[key] = domain.RewardRule{Rate: rule.Rate, Cap: rule.Cap}
		}
		cards[i] = domain.Card{
			Name:          card.Name,
			ReferenceLink: card.ReferenceLink,
			BaseRate:      card.BaseRate,
			Rules:         rules,
		}
	}

	c, err := New(categories, cards)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}
