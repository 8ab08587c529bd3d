package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

// RecipeHandler implements every capability on /recipes/.
type RecipeHandler struct {
	recipeService service.IRecipeService
	pageSize      int
}

func NewRecipeHandler(recipes service.IRecipeService, pageSize int) *RecipeHandler {
	return &RecipeHandler{recipeService: recipes, pageSize: pageSize}
}

func parseRecipeFilter(c *gin.Context) types.RecipeFilter {
	var f types.RecipeFilter
	if n, err := strconv.ParseUint(c.Query("author"), 10, 64); err == nil {
		f.AuthorID = uint(n)
	}
	f.Tags = c.QueryArray("tags")
	f.IsFavorited = queryFlag(c, "is_favorited")
	f.IsInShoppingCart = queryFlag(c, "is_in_shopping_cart")
	return f
}

func queryFlag(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

func (h *RecipeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	p := parsePage(c, h.pageSize)
	viewerID := viewer(c)

	recipes, total, err := h.recipeService.List(ctx, viewerID, parseRecipeFilter(c), p.offset(), p.limit)
	if err != nil {
		respondError(c, err)
		return
	}
	flags, err := h.recipeService.Flags(ctx, viewerID, recipes)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		results = append(results, recipeResponse(&recipes[i], flags))
	}
	c.JSON(http.StatusOK, newPage(c, p, total, results))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondRecipe(c, http.StatusCreated, userID, recipe)
}

func (h *RecipeHandler) Retrieve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondRecipe(c, http.StatusOK, viewer(c), recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondRecipe(c, http.StatusOK, userID, recipe)
}

func (h *RecipeHandler) Destroy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) respondRecipe(c *gin.Context, status int, viewerID uint, recipe *models.Recipe) {
	flags, err := h.recipeService.Flags(c.Request.Context(), viewerID, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, recipeResponse(recipe, flags))
}
