package item

import (
	"context"

	"gorm.io/gorm"

	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/database/query"
)

// ListConfig is what GET /items/ accepts.
var ListConfig = query.Config{
	SearchFields:      []string{"name", "description"},
	AllowedSortFields: []string{"id", "name"},
	AllowedFilters:    []string{"name", "description"},
	DefaultSort:       "id",
	DefaultPageSize:   20,
	MaxPageSize:       100,
}

// Repository persists items. Errors are raw GORM errors.
type Repository struct {
	db *database.DB
}

// NewRepository returns a repository over db.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, it *Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

// Get returns gorm.ErrRecordNotFound for an unknown id.
func (r *Repository) Get(ctx context.Context, id int64) (*Item, error) {
	var it Item
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// Update applies changes to the item and returns the stored row.
func (r *Repository) Update(ctx context.Context, id int64, changes map[string]interface{}) (*Item, error) {
	var out *Item
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var it Item
		if err := tx.First(&it, id).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&it).Updates(changes).Error; err != nil {
				return err
			}
			it = Item{}
			if err := tx.First(&it, id).Error; err != nil {
				return err
			}
		}
		out = &it
		return nil
	})
	return out, err
}

// Delete returns gorm.ErrRecordNotFound when nothing was removed.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of items.
func (r *Repository) List(ctx context.Context, params query.Params) (*query.Result[Item], error) {
	return query.Apply[Item](r.db.WithContext(ctx).Model(&Item{}), params, ListConfig)
}
