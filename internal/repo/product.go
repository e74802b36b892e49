package repo

import (
	"context"

	"storeapi/internal/models"
)

func (r *GormRepo) FindProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Store").
		Order("created_at DESC, id DESC").
		Find(&products).Error
	if err != nil {
		return nil, classify(err)
	}
	return products, nil
}

func (r *GormRepo) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Store").First(&product, id).Error; err != nil {
		return nil, classify(err)
	}
	return &product, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return classify(r.DB.WithContext(ctx).Omit("Store").Save(product).Error)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
