package repository

import (
	"context"

	"gorm.io/gorm"

	"reuse/internal/model"
)

// ItemRepository defines item persistence operations. There is no delete
// and no pagination: listings are served whole, newest first.
type ItemRepository interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository builds a GORM-backed repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// List returns all items newest first with the owner preloaded.
func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateFields applies a partial update and returns the fresh record.
// Nil map values write NULL, clearing optional columns.
func (r *itemRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.Item, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}
