package repository

import (
	"context"
	"errors"

	"syncboard/internal/model"

	"gorm.io/gorm"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	FindByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByExternalID looks a user up by identity provider id. A missing user is
// reported as (nil, nil).
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("external_user_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error) {
	if len(externalIDs) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	err := r.db.WithContext(ctx).Where("external_user_id IN ?", externalIDs).Order("name").Find(&users).Error
	return users, err
}
