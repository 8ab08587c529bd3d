package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/types"
	"gorm.io/gorm"
)

// recipeTag is a row of the recipe/tag join table.
type recipeTag struct {
	RecipeID uint
	TagID    uint
}

func (recipeTag) TableName() string {
	return "recipe_tags"
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// RecipeFlags tells a viewer how each listed recipe relates to them.
type RecipeFlags struct {
	Favorited  map[uint]bool
	InCart     map[uint]bool
	Subscribed map[uint]bool
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Ingredients.Ingredient")
}

// List returns one page of recipes, newest first. viewerID is 0 for
// anonymous callers, who get an empty page for the favorited and cart filters.
func (s *RecipeService) List(ctx context.Context, viewerID uint, filter types.RecipeFilter, offset, limit int) ([]models.Recipe, int64, error) {
	if viewerID == 0 && (filter.IsFavorited || filter.IsInShoppingCart) {
		return []models.Recipe{}, 0, nil
	}

	db := s.db.WithContext(ctx)
	q := db.Model(&models.Recipe{})
	if filter.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.Tags) > 0 {
		tagged := db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.Tags)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if filter.IsFavorited {
		q = q.Where("recipes.id IN (?)", db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", viewerID))
	}
	if filter.IsInShoppingCart {
		q = q.Where("recipes.id IN (?)", db.Model(&models.CartItem{}).Select("recipe_id").Where("user_id = ?", viewerID))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recipes []models.Recipe
	if err := withDetails(q).Order("recipes.pub_date DESC").Order("recipes.id DESC").
		Offset(offset).Limit(limit).Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Get retrieves a recipe by ID
func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withDetails(s.db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// Flags loads the viewer's favorite, cart and subscription state for recipes.
func (s *RecipeService) Flags(ctx context.Context, viewerID uint, recipes []models.Recipe) (*RecipeFlags, error) {
	db := s.db.WithContext(ctx)
	ids := make([]uint, 0, len(recipes))
	authors := make([]uint, 0, len(recipes))
	for i := range recipes {
		ids = append(ids, recipes[i].ID)
		authors = append(authors, recipes[i].AuthorID)
	}
	var (
		flags RecipeFlags
		err   error
	)
	if flags.Favorited, err = idSet(db, &models.Favorite{}, "recipe_id", viewerID, ids); err != nil {
		return nil, err
	}
	if flags.InCart, err = idSet(db, &models.CartItem{}, "recipe_id", viewerID, ids); err != nil {
		return nil, err
	}
	if flags.Subscribed, err = idSet(db, &models.Follow{}, "author_id", viewerID, authors); err != nil {
		return nil, err
	}
	return &flags, nil
}

// Create stores a new recipe with its ingredient amounts and tags.
func (s *RecipeService) Create(ctx context.Context, authorID uint, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)
	if err := s.checkReferences(db, req.Ingredients, req.Tags); err != nil {
		return nil, err
	}

	image, err := s.images.SaveDataURI(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       image,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Create(&recipe).Error; err != nil {
			return err
		}
		if err := replaceIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return replaceTags(tx, recipe.ID, req.Tags)
	})
	if err != nil {
		s.images.Discard(ctx, image)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", recipe.ID).Uint("author_id", authorID).Msg("recipe created")
	return s.Get(ctx, recipe.ID)
}

// Update applies a partial update. Only the author may change a recipe.
// Ingredient and tag sets, when present, replace the stored ones.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uint, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	var current models.Recipe
	if err := db.First(&current, recipeID).Error; err != nil {
		return nil, notFound(err)
	}
	if current.AuthorID != userID {
		return nil, ErrForbidden
	}

	verr := &ValidationError{}
	if req.Ingredients != nil && len(req.Ingredients) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	}
	if req.Tags != nil && len(req.Tags) == 0 {
		verr.Add("tags", "at least one tag is required")
	}
	if !verr.Empty() {
		return nil, verr
	}
	if err := s.checkReferences(db, req.Ingredients, req.Tags); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}
	if req.Image != nil {
		image, err := s.images.SaveDataURI(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = image
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := lockByID(tx, &recipe, recipeID); err != nil {
			return err
		}
		if recipe.AuthorID != userID {
			return ErrForbidden
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			if err := replaceIngredients(tx, recipeID, req.Ingredients); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			return replaceTags(tx, recipeID, req.Tags)
		}
		return nil
	})
	if err != nil {
		if image, ok := updates["image"].(string); ok {
			s.images.Discard(ctx, image)
		}
		return nil, err
	}
	return s.Get(ctx, recipeID)
}

// Delete removes the recipe and every row that references it.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := lockByID(tx, &recipe, recipeID); err != nil {
			return err
		}
		if recipe.AuthorID != userID {
			return ErrForbidden
		}
		for _, model := range []interface{}{&models.RecipeIngredient{}, &recipeTag{}, &models.Favorite{}, &models.CartItem{}} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
}

// checkReferences reports unknown ingredient or tag IDs as validation errors.
func (s *RecipeService) checkReferences(db *gorm.DB, ingredients []types.IngredientAmount, tags []uint) error {
	verr := &ValidationError{}

	if len(ingredients) > 0 {
		ids := make([]uint, 0, len(ingredients))
		seen := make(map[uint]bool, len(ingredients))
		for _, in := range ingredients {
			if seen[in.ID] {
				verr.Add("ingredients", fmt.Sprintf("ingredient %d is listed more than once", in.ID))
				continue
			}
			seen[in.ID] = true
			ids = append(ids, in.ID)
			if in.Amount < 1 {
				verr.Add("ingredients", fmt.Sprintf("amount for ingredient %d must be at least 1", in.ID))
			}
		}
		missing, err := missingIDs(db, &models.Ingredient{}, ids)
		if err != nil {
			return err
		}
		for _, id := range missing {
			verr.Add("ingredients", fmt.Sprintf("ingredient %d does not exist", id))
		}
	}

	if len(tags) > 0 {
		missing, err := missingIDs(db, &models.Tag{}, tags)
		if err != nil {
			return err
		}
		for _, id := range missing {
			verr.Add("tags", fmt.Sprintf("tag %d does not exist", id))
		}
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}

func missingIDs(db *gorm.DB, model interface{}, ids []uint) ([]uint, error) {
	var found []uint
	if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
			have[id] = true
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}

func replaceIngredients(tx *gorm.DB, recipeID uint, ingredients []types.IngredientAmount) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	rows := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, in := range ingredients {
		rows = append(rows, models.RecipeIngredient{RecipeID: recipeID, IngredientID: in.ID, Amount: in.Amount})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit("Ingredient").Create(&rows).Error
}

func replaceTags(tx *gorm.DB, recipeID uint, tagIDs []uint) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&recipeTag{}).Error; err != nil {
		return err
	}
	rows := make([]recipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, recipeTag{RecipeID: recipeID, TagID: id})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
