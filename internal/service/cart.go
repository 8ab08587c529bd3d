package service

import (
	"context"

	"github.com/pageza/foodgram/backend/internal/metrics"
	"github.com/pageza/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &recipe, recipeID); err != nil {
			return err
		}
		exists, err := rowExists(tx, &models.CartItem{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyInCart
		}
		return createUnique(tx, &models.CartItem{UserID: userID, RecipeID: recipeID}, ErrAlreadyInCart)
	})
	metrics.RecordRelation("cart", "add", err)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *CartService) Remove(ctx context.Context, userID, recipeID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := lockByID(tx, &recipe, recipeID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotInCart
		}
		return nil
	})
	metrics.RecordRelation("cart", "remove", err)
	return err
}
