package service

import (
	"context"

	"github.com/pageza/foodgram/backend/internal/metrics"
	"github.com/pageza/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe makes userID follow authorID and returns the author.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint) (*models.User, error) {
	if userID == authorID {
		metrics.RecordRelation("follow", "add", ErrSelfFollow)
		return nil, ErrSelfFollow
	}
	var author models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &author, authorID); err != nil {
			return err
		}
		exists, err := rowExists(tx, &models.Follow{}, "user_id = ? AND author_id = ?", userID, authorID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadySubscribed
		}
		return createUnique(tx, &models.Follow{UserID: userID, AuthorID: authorID}, ErrAlreadySubscribed)
	})
	metrics.RecordRelation("follow", "add", err)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := lockByID(tx, &author, authorID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotSubscribed
		}
		return nil
	})
	metrics.RecordRelation("follow", "remove", err)
	return err
}

// Authors lists the users userID follows, ordered by username.
func (s *SubscriptionService) Authors(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var authors []models.User
	if err := q.Order("users.username").Offset(offset).Limit(limit).Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// AuthorRecipes returns the newest recipes of an author, at most limit of
// them when limit > 0, and the author's total recipe count.
func (s *SubscriptionService) AuthorRecipes(ctx context.Context, authorID uint, limit int) ([]models.Recipe, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", authorID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := q.Order("pub_date DESC, id DESC")
	if limit > 0 {
		list = list.Limit(limit)
	}
	var recipes []models.Recipe
	if err := list.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// SubscribedTo reports which of authorIDs userID follows.
func (s *SubscriptionService) SubscribedTo(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	return idSet(s.db.WithContext(ctx), &models.Follow{}, "author_id", userID, authorIDs)
}
