package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// reservedUsernames collide with routes below /api/users/.
var reservedUsernames = map[string]bool{"me": true, "subscriptions": true, "set_password": true}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	verr := &ValidationError{}
	if reservedUsernames[strings.ToLower(username)] {
		verr.Add("username", "this username is reserved")
	}
	if err := s.checkTaken(db, email, username, verr); err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration.
			verr := &ValidationError{}
			if cerr := s.checkTaken(db, email, username, verr); cerr != nil || verr.Empty() {
				verr.Add("email", "a user with that email or username already exists")
			}
			return nil, verr
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) checkTaken(db *gorm.DB, email, username string, verr *ValidationError) error {
	taken, err := rowExists(db, &models.User{}, "email = ?", email)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("email", "a user with that email already exists")
	}
	taken, err = rowExists(db, &models.User{}, "username = ?", username)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("username", "a user with that username already exists")
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetPassword replaces the password after checking the current one.
func (s *UserService) SetPassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return NewValidationError("current_password", "Wrong password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).Update("password_hash", string(hashed)).Error
}
