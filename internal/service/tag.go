package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/gosimple/slug"
	"github.com/pageza/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

var tagColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tag, nil
}

// Ensure creates tag unless a tag with the same slug exists. A missing slug
// is derived from the name. It reports whether a row was inserted.
func (s *TagService) Ensure(ctx context.Context, tag *models.Tag) (bool, error) {
	if tag.Slug == "" {
		tag.Slug = slug.Make(tag.Name)
	}
	verr := &ValidationError{}
	if tag.Name == "" {
		verr.Add("name", "this field is required")
	}
	if tag.Slug == "" {
		verr.Add("slug", "this field is required")
	}
	if !tagColorPattern.MatchString(tag.Color) {
		verr.Add("color", "enter a valid hex color such as #E26C2D")
	}
	if !verr.Empty() {
		return false, verr
	}

	db := s.db.WithContext(ctx)
	var existing models.Tag
	err := db.Where("slug = ?", tag.Slug).First(&existing).Error
	if err == nil {
		*tag = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := createUnique(db, tag, NewValidationError("name", "tag with this name already exists")); err != nil {
		return false, err
	}
	return true, nil
}
