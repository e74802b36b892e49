package repo

import (
	"context"
	"errors"

	"storeapi/internal/models"
)

// RevokeToken records a jti in the blocklist. Revoking an already revoked
// token is a no-op: the terminal state does not change.
func (r *GormRepo) RevokeToken(ctx context.Context, jti string) error {
	err := classify(r.DB.WithContext(ctx).Create(&models.BlocklistEntry{JTI: jti}).Error)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

func (r *GormRepo) TokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.BlocklistEntry{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}
