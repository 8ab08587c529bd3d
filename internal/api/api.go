// Package api exposes the recipe, user and relation services over HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/storage"
)

// Services is everything the handlers depend on.
type Services struct {
	Auth          service.IAuthService
	Users         service.IUserService
	Subscriptions service.ISubscriptionService
	Tags          service.ITagService
	Ingredients   service.IIngredientService
	Recipes       service.IRecipeService
	Favorites     service.IRelationService
	Cart          service.IRelationService
	ShoppingList  service.IShoppingListService
}

// NewServices wires the gorm-backed services. redisClient may be nil, which
// disables token revocation.
func NewServices(db *gorm.DB, cfg *config.Config, images storage.ImageStore, redisClient *redis.Client) *Services {
	var revoked service.TokenStore
	if redisClient != nil {
		revoked = service.NewRedisTokenStore(redisClient)
	}
	return &Services{
		Auth:          service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, revoked),
		Users:         service.NewUserService(db),
		Subscriptions: service.NewSubscriptionService(db),
		Tags:          service.NewTagService(db),
		Ingredients:   service.NewIngredientService(db),
		Recipes:       service.NewRecipeService(db, service.NewImageService(images)),
		Favorites:     service.NewFavoriteService(db),
		Cart:          service.NewCartService(db),
		ShoppingList:  service.NewShoppingListService(db),
	}
}

// Options tunes the HTTP layer.
type Options struct {
	PageSize int
	// RecipeLimiter throttles recipe creation; nil disables it.
	RecipeLimiter *middleware.RateLimiter
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(router *gin.Engine, svc *Services, opts Options) {
	RegisterValidators()
	if opts.PageSize <= 0 {
		opts.PageSize = 6
	}

	api := router.Group("/api", middleware.OptionalAuth(svc.Auth))
	requireUser := middleware.RequireUser()
	authOnly := []gin.HandlerFunc{requireUser}

	NewAuthHandler(svc.Auth).RegisterRoutes(api, requireUser)

	users := NewUserHandler(svc.Users, svc.Subscriptions, opts.PageSize)
	api.GET("/users/me/", requireUser, users.Me)
	api.POST("/users/set_password/", requireUser, users.SetPassword)
	api.GET("/users/subscriptions/", requireUser, users.Subscriptions)
	registerResource(api, resource{collection: "/users/", member: "/users/:id/", handler: users})
	registerResource(api, resource{
		collection: "/users/:id/subscribe/",
		handler:    &SubscriptionHandler{users: users},
		write:      authOnly,
	})

	registerResource(api, resource{collection: "/tags/", member: "/tags/:id/", handler: NewTagHandler(svc.Tags)})
	registerResource(api, resource{
		collection: "/ingredients/",
		member:     "/ingredients/:id/",
		handler:    NewIngredientHandler(svc.Ingredients),
	})

	shopping := NewShoppingListHandler(svc.ShoppingList)
	api.GET("/recipes/download_shopping_cart/", requireUser, shopping.Download)

	var throttle []gin.HandlerFunc
	if opts.RecipeLimiter != nil {
		throttle = append(throttle, opts.RecipeLimiter.RateLimitMiddleware())
	}
	registerResource(api, resource{
		collection: "/recipes/",
		member:     "/recipes/:id/",
		handler:    NewRecipeHandler(svc.Recipes, opts.PageSize),
		write:      authOnly,
		create:     throttle,
	})
	registerResource(api, resource{
		collection: "/recipes/:id/favorite/",
		handler:    NewRelationHandler(svc.Favorites),
		write:      authOnly,
	})
	registerResource(api, resource{
		collection: "/recipes/:id/shopping_cart/",
		handler:    NewRelationHandler(svc.Cart),
		write:      authOnly,
	})
}
