package cache

import (
	"context"

	"gorm.io/gorm"

	"food-storefront/models"
)

// SQLiteCache stores cart snapshots in the local sqlite database, one row
// per line item keyed by (owner, dish).
type SQLiteCache struct {
	db *gorm.DB
}

// NewSQLiteCache migrates the cart table and returns the cache.
func NewSQLiteCache(db *gorm.DB) (*SQLiteCache, error) {
	if err := db.AutoMigrate(&models.CartLineItem{}); err != nil {
		return nil, err
	}
	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) Load(ctx context.Context, userID uint) (models.CartSession, error) {
	var items []models.CartLineItem
	err := c.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("position asc").
		Find(&items).Error
	if err != nil {
		return models.CartSession{}, err
	}

	session := models.CartSession{Items: items}
	if len(items) > 0 {
		session.RestaurantID = items[0].RestaurantID
	}
	return session, nil
}

func (c *SQLiteCache) Save(ctx context.Context, userID uint, session models.CartSession) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", userID).Delete(&models.CartLineItem{}).Error; err != nil {
			return err
		}
		if len(session.Items) == 0 {
			return nil
		}
		rows := make([]models.CartLineItem, len(session.Items))
		for i, it := range session.Items {
			it.OwnerID = userID
			it.Position = i
			rows[i] = it
		}
		return tx.Create(&rows).Error
	})
}

func (c *SQLiteCache) Clear(ctx context.Context, userID uint) error {
	return c.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Delete(&models.CartLineItem{}).Error
}
