package repo

import (
	"context"

	"storeapi/internal/models"
)

func (r *GormRepo) FindUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return classify(r.DB.WithContext(ctx).Save(user).Error)
}
