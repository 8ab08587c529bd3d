package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

// pathID parses the :id route parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as 404.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the caller's ID or answers 401.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return 0, false
	}
	return id, true
}

// viewer returns the caller's ID, or 0 for anonymous requests.
func viewer(c *gin.Context) uint {
	id, _ := middleware.UserID(c)
	return id
}

func recipeResponse(r *models.Recipe, flags *service.RecipeFlags) types.RecipeResponse {
	ingredients := make([]types.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ingredients = append(ingredients, types.RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return types.RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           types.NewUserResponse(&r.Author, flags.Subscribed[r.AuthorID]),
		Ingredients:      ingredients,
		IsFavorited:      flags.Favorited[r.ID],
		IsInShoppingCart: flags.InCart[r.ID],
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		FavoriteCount:    r.FavoriteCount,
		PubDate:          r.PubDate,
	}
}
