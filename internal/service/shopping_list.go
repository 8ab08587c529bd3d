package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pageza/foodgram/backend/internal/metrics"
	"gorm.io/gorm"
)

const ShoppingListHeader = "Shopping list"

// ShoppingListEntry is one merged line of the shopping list.
type ShoppingListEntry struct {
	Name  string
	Unit  string
	Total int64
}

type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate sums ingredient amounts over every recipe in the user's cart.
// Rows are grouped by ingredient name and measurement unit, so one name
// listed with two units yields two entries. Entries are sorted by name,
// then unit.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uint) ([]ShoppingListEntry, error) {
	var entries []ShoppingListEntry
	err := s.db.WithContext(ctx).
		Table("shopping_cart").
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_cart.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_cart.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list: %w", err)
	}
	return entries, nil
}

// Render builds the text document for the user's cart.
func (s *ShoppingListService) Render(ctx context.Context, userID uint) ([]byte, error) {
	entries, err := s.Aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := WriteShoppingList(&buf, entries); err != nil {
		return nil, err
	}
	metrics.ShoppingListExports.Inc()
	return buf.Bytes(), nil
}

// WriteShoppingList writes the header line followed by one
// "- {name} ({unit}): {total}" line per entry.
func WriteShoppingList(w io.Writer, entries []ShoppingListEntry) error {
	if _, err := fmt.Fprintln(w, ShoppingListHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "- %s (%s): %d\n", e.Name, e.Unit, e.Total); err != nil {
			return err
		}
	}
	return nil
}
