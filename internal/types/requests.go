package types

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// IngredientAmount references an existing ingredient by ID.
type IngredientAmount struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required,min=1"`
}

type CreateRecipeRequest struct {
	Ingredients []IngredientAmount `json:"ingredients" binding:"required,min=1,unique=ID,dive"`
	Tags        []uint             `json:"tags" binding:"required,min=1,unique"`
	Image       string             `json:"image" binding:"required"`
	Name        string             `json:"name" binding:"required,max=200"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required,min=1"`
}

// UpdateRecipeRequest carries a partial update; nil fields are left as they are.
type UpdateRecipeRequest struct {
	Ingredients []IngredientAmount `json:"ingredients" binding:"omitempty,unique=ID,dive"`
	Tags        []uint             `json:"tags" binding:"omitempty,unique"`
	Image       *string            `json:"image"`
	Name        *string            `json:"name" binding:"omitempty,max=200"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time" binding:"omitempty,min=1"`
}

// RecipeFilter holds the recipe list query parameters.
type RecipeFilter struct {
	AuthorID         uint
	Tags             []string
	IsFavorited      bool
	IsInShoppingCart bool
}
