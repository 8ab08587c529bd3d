package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

// UserHandler serves /users/: Lister, Creator and Retriever plus the
// me, set_password and subscriptions actions.
type UserHandler struct {
	userService         service.IUserService
	subscriptionService service.ISubscriptionService
	pageSize            int
}

func NewUserHandler(users service.IUserService, subs service.ISubscriptionService, pageSize int) *UserHandler {
	return &UserHandler{userService: users, subscriptionService: subs, pageSize: pageSize}
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	p := parsePage(c, h.pageSize)

	users, total, err := h.userService.List(ctx, p.offset(), p.limit)
	if err != nil {
		respondError(c, err)
		return
	}
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := h.subscriptionService.SubscribedTo(ctx, viewer(c), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]types.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, types.NewUserResponse(&users[i], subscribed[users[i].ID]))
	}
	c.JSON(http.StatusOK, newPage(c, p, total, results))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewUserResponse(user, false))
}

func (h *UserHandler) Retrieve(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondUser(c, userID, id)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.respondUser(c, userID, userID)
}

func (h *UserHandler) respondUser(c *gin.Context, viewerID, id uint) {
	ctx := c.Request.Context()
	user, err := h.userService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	subscribed, err := h.subscriptionService.SubscribedTo(ctx, viewerID, []uint{id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewUserResponse(user, subscribed[id]))
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.userService.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the caller follows with their newest
// recipes, truncated by the recipes_limit query parameter.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	p := parsePage(c, h.pageSize)

	authors, total, err := h.subscriptionService.Authors(ctx, userID, p.offset(), p.limit)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := recipesLimit(c)
	results := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		sub, err := h.subscription(c, &authors[i], true, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		results = append(results, sub)
	}
	c.JSON(http.StatusOK, newPage(c, p, total, results))
}

func (h *UserHandler) subscription(c *gin.Context, author *models.User, subscribed bool, limit int) (types.SubscriptionResponse, error) {
	recipes, count, err := h.subscriptionService.AuthorRecipes(c.Request.Context(), author.ID, limit)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}
	summaries := make([]types.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		summaries = append(summaries, types.NewRecipeSummary(&recipes[i]))
	}
	return types.SubscriptionResponse{
		UserResponse: types.NewUserResponse(author, subscribed),
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}

func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SubscriptionHandler serves /users/:id/subscribe/ as a Creator and Destroyer.
type SubscriptionHandler struct {
	users *UserHandler
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	authorID, ok := pathID(c)
	if !ok {
		return
	}
	author, err := h.users.subscriptionService.Subscribe(c.Request.Context(), userID, authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	sub, err := h.users.subscription(c, author, true, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) Destroy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	authorID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.subscriptionService.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
