package service

import (
	"context"

	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/metrics"
	"github.com/pageza/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteService keeps Recipe.FavoriteCount equal to the number of Favorite
// rows for the recipe. The join row and the counter always change in one
// transaction.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add favorites recipeID for userID and increments the recipe's counter.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &recipe, recipeID); err != nil {
			return err
		}
		exists, err := rowExists(tx, &models.Favorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFavorited
		}
		if err := createUnique(tx, &models.Favorite{UserID: userID, RecipeID: recipeID}, ErrAlreadyFavorited); err != nil {
			return err
		}
		if err := tx.Exec("UPDATE recipes SET favorite_count = favorite_count + 1 WHERE id = ?", recipeID).Error; err != nil {
			return err
		}
		recipe.FavoriteCount++
		return nil
	})
	metrics.RecordRelation("favorite", "add", err)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Uint("recipe_id", recipeID).Msg("favorite rejected")
		return nil, err
	}
	return &recipe, nil
}

// Remove deletes the favorite and decrements the recipe's counter.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := lockByID(tx, &recipe, recipeID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFavorited
		}
		return tx.Exec("UPDATE recipes SET favorite_count = favorite_count - ? WHERE id = ?", res.RowsAffected, recipeID).Error
	})
	metrics.RecordRelation("favorite", "remove", err)
	return err
}
