package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

// RelationHandler mounts a user-to-recipe relation (favorites, shopping
// cart) as a Creator and Destroyer on /recipes/:id/<relation>/.
type RelationHandler struct {
	relation service.IRelationService
}

func NewRelationHandler(relation service.IRelationService) *RelationHandler {
	return &RelationHandler{relation: relation}
}

func (h *RelationHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.relation.Add(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewRecipeSummary(recipe))
}

func (h *RelationHandler) Destroy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.relation.Remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type ShoppingListHandler struct {
	shoppingList service.IShoppingListService
}

func NewShoppingListHandler(list service.IShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{shoppingList: list}
}

// Download sends the aggregated cart as a plain-text attachment.
func (h *ShoppingListHandler) Download(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	body, err := h.shoppingList.Render(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
