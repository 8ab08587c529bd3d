package service

import (
	"context"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// IUserService defines the interface for user account operations
type IUserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	SetPassword(ctx context.Context, userID uint, current, next string) error
}

// ISubscriptionService defines the follow relation operations
type ISubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID uint) (*models.User, error)
	Unsubscribe(ctx context.Context, userID, authorID uint) error
	Authors(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
	AuthorRecipes(ctx context.Context, authorID uint, limit int) ([]models.Recipe, int64, error)
	SubscribedTo(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error)
}

type ITagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id uint) (*models.Tag, error)
}

type IIngredientService interface {
	Search(ctx context.Context, prefix string) ([]models.Ingredient, error)
	Get(ctx context.Context, id uint) (*models.Ingredient, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context, viewerID uint, filter types.RecipeFilter, offset, limit int) ([]models.Recipe, int64, error)
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	Flags(ctx context.Context, viewerID uint, recipes []models.Recipe) (*RecipeFlags, error)
	Create(ctx context.Context, authorID uint, req *types.CreateRecipeRequest) (*models.Recipe, error)
	Update(ctx context.Context, userID, recipeID uint, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	Delete(ctx context.Context, userID, recipeID uint) error
}

// IRelationService is shared by the favorite and shopping cart relations.
type IRelationService interface {
	Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error)
	Remove(ctx context.Context, userID, recipeID uint) error
}

type IShoppingListService interface {
	Render(ctx context.Context, userID uint) ([]byte, error)
}

var (
	_ IAuthService         = (*AuthService)(nil)
	_ IUserService         = (*UserService)(nil)
	_ ISubscriptionService = (*SubscriptionService)(nil)
	_ ITagService          = (*TagService)(nil)
	_ IIngredientService   = (*IngredientService)(nil)
	_ IRecipeService       = (*RecipeService)(nil)
	_ IRelationService     = (*FavoriteService)(nil)
	_ IRelationService     = (*CartService)(nil)
	_ IShoppingListService = (*ShoppingListService)(nil)
)
