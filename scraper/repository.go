package scraper

import (
	"context"
	"time"

	"github.com/kbukum/mp/database"
)

// Page is a row of scraped_data.
type Page struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"not null;default:''"`
	URL       string    `json:"url" gorm:"column:url;not null;default:''"`
	ScrapedAt time.Time `json:"scraped_at" gorm:"autoCreateTime"`
}

func (Page) TableName() string { return "scraped_data" }

// Repository persists scraped pages.
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts page and fills its ID.
func (r *Repository) Save(ctx context.Context, page *Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

// Count returns how many pages were scraped at or after since. A zero
// since counts everything.
func (r *Repository) Count(ctx context.Context, since time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&Page{})
	if !since.IsZero() {
		q = q.Where("scraped_at >= ?", since)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// Latest returns up to limit pages, newest first.
func (r *Repository) Latest(ctx context.Context, limit int) ([]Page, error) {
	pages := []Page{}
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&pages).Error
	return pages, err
}
