// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cashback-optimizer/internal/domain"
	"cashback-optimizer/internal/storage"
)

var _ storage.CatalogStorage = (*Storage)(nil)

// Storage reads catalog reference data from Postgres. It is only queried
// once, at process start; the loaded catalog is immutable afterwards.
type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === CatalogStorage ===

func (s *Storage) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT key, display_name
		FROM categories
		ORDER BY position, key
	`)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.Key, &cat.DisplayName); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return categories, nil
}

func (s *Storage) LoadCards(ctx context.Context) ([]domain.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, reference_link, base_rate
		FROM cards
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	ids := make(map[string]int)
	for rows.Next() {
		var (
			id   int
			card domain.Card
		)
		if err := rows.Scan(&id, &card.Name, &card.ReferenceLink, &card.BaseRate); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		card.Rules = make(map[string]domain.RewardRule)
		ids[card.Name] = id
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	byID := make(map[int]*domain.Card, len(cards))
	for i := range cards {
		byID[ids[cards[i].Name]] = &cards[i]
	}

	ruleRows, err := s.db.Query(ctx, `
		SELECT card_id, category_key, rate, cap
		FROM card_rules
	`)
	if err != nil {
		return nil, fmt.Errorf("load card rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var (
			cardID int
			key    string
			rule   domain.RewardRule
		)
		if err := ruleRows.Scan(&cardID, &key, &rule.Rate, &rule.Cap); err != nil {
			return nil, fmt.Errorf("scan card rule: %w", err)
		}
		card, ok := byID[cardID]
		if !ok {
			return nil, fmt.Errorf("card rule references unknown card id %d", cardID)
		}
		card.Rules[key] = rule
	}
	if err := ruleRows.Err(); err != nil {
		return nil, fmt.Errorf("load card rules: %w", err)
	}
	return cards, nil
}
