// Package seed fills a fresh database with the default tags and, on request,
// a handful of demo accounts and ingredients for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

// DemoPassword is the password of every demo user.
const DemoPassword = "testpassword123"

var DefaultTags = []models.Tag{
	{Name: "breakfast", Color: "#E26C2D"},
	{Name: "lunch", Color: "#49B64E"},
	{Name: "dinner", Color: "#8775D2"},
}

var demoUsers = []types.RegisterRequest{
	{Email: "john.doe@example.com", Username: "johndoe", FirstName: "John", LastName: "Doe"},
	{Email: "jane.smith@example.com", Username: "janesmith", FirstName: "Jane", LastName: "Smith"},
	{Email: "bob.wilson@example.com", Username: "bobwilson", FirstName: "Bob", LastName: "Wilson"},
}

var demoIngredients = []models.Ingredient{
	{Name: "flour", MeasurementUnit: "g"},
	{Name: "sugar", MeasurementUnit: "g"},
	{Name: "egg", MeasurementUnit: "pcs"},
	{Name: "milk", MeasurementUnit: "ml"},
	{Name: "salt", MeasurementUnit: "pinch"},
}

type Options struct {
	Demo bool
}

// Result counts the rows each step inserted.
type Result struct {
	Tags        int
	Users       int
	Ingredients int
}

// Run is idempotent: rows that already exist are left alone.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	var res Result
	tags := service.NewTagService(db)
	for _, tag := range DefaultTags {
		tag := tag
		created, err := tags.Ensure(ctx, &tag)
		if err != nil {
			return res, fmt.Errorf("failed to seed tag %s: %w", tag.Name, err)
		}
		if created {
			res.Tags++
		}
	}
	if !opts.Demo {
		return res, nil
	}

	users := service.NewUserService(db)
	for _, req := range demoUsers {
		req := req
		req.Password = DemoPassword
		if _, err := users.Register(ctx, &req); err != nil {
			if errors.Is(err, service.ErrValidation) {
				logging.Ctx(ctx).Debug().Str("username", req.Username).Msg("demo user exists, skipping")
				continue
			}
			return res, fmt.Errorf("failed to seed user %s: %w", req.Username, err)
		}
		res.Users++
	}

	for _, ingredient := range demoIngredients {
		ingredient := ingredient
		var n int64
		q := db.WithContext(ctx).Model(&models.Ingredient{}).
			Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit)
		if err := q.Count(&n).Error; err != nil {
			return res, err
		}
		if n > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return res, fmt.Errorf("failed to seed ingredient %s: %w", ingredient.Name, err)
		}
		res.Ingredients++
	}
	return res, nil
}
