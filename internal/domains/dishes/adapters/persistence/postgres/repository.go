package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	"github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists dishes in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// dishRecord maps a dish to the dishes table. Seq keeps insertion order stable across updates.
type dishRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	Seq         int64     `gorm:"column:seq;autoIncrement;uniqueIndex"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       int64     `gorm:"column:price"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (dishRecord) TableName() string { return "dishes" }

// Save inserts a new dish or overwrites the stored one.
func (r *Repository) Save(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, errors.New("dish is nil")
	}
	if dish.ID == "" {
		return nil, errors.New("dish id is required")
	}
	record := toRecord(dish)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"price":       record.Price,
				"image_url":   record.ImageURL,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a dish by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Dish, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record dishRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all dishes in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Dish, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []dishRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	dishes := make([]*domain.Dish, 0, len(records))
	for i := range records {
		dishes = append(dishes, records[i].toDomain())
	}
	return dishes, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres dish repository not configured")
	}
	return nil
}

func toRecord(dish *domain.Dish) dishRecord {
	return dishRecord{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Price:       dish.Price,
		ImageURL:    dish.ImageURL,
	}
}

func (r dishRecord) toDomain() *domain.Dish {
	return &domain.Dish{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
}
