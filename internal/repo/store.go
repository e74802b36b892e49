package repo

import (
	"context"

	"gorm.io/gorm"

	"storeapi/internal/models"
)

func (r *GormRepo) FindStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.DB.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC, id DESC").
		Find(&stores).Error
	if err != nil {
		return nil, classify(err)
	}
	return stores, nil
}

func (r *GormRepo) FindStore(ctx context.Context, id int) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Preload("Products").First(&store, id).Error; err != nil {
		return nil, classify(err)
	}
	return &store, nil
}

func (r *GormRepo) SaveStore(ctx context.Context, store *models.Store) error {
	return classify(r.DB.WithContext(ctx).Omit("Products").Save(store).Error)
}

// DeleteStore removes a store and all of its products in one transaction.
// The explicit product delete keeps the cascade working on drivers where the
// FK declaration alone would not.
func (r *GormRepo) DeleteStore(ctx context.Context, id int) error {
	return classify(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Store{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
