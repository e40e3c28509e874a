package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps an order to the orders table. Dish lines are stored as two parallel arrays.
type orderRecord struct {
	ID           string         `gorm:"primaryKey;column:id;size:64"`
	Seq          int64          `gorm:"column:seq;autoIncrement;uniqueIndex"`
	DeliverTo    string         `gorm:"column:deliver_to"`
	MobileNumber string         `gorm:"column:mobile_number"`
	Status       string         `gorm:"column:status;type:varchar(32);index"`
	DishIDs      pq.StringArray `gorm:"column:dish_ids;type:text[]"`
	Quantities   pq.Int64Array  `gorm:"column:quantities;type:bigint[]"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order or overwrites the stored one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.ID == "" {
		return nil, errors.New("order id is required")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"deliver_to":    record.DeliverTo,
				"mobile_number": record.MobileNumber,
				"status":        record.Status,
				"dish_ids":      record.DishIDs,
				"quantities":    record.Quantities,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all orders in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:           order.ID,
		DeliverTo:    order.DeliverTo,
		MobileNumber: order.MobileNumber,
		Status:       string(order.Status),
		DishIDs:      make(pq.StringArray, 0, len(order.Dishes)),
		Quantities:   make(pq.Int64Array, 0, len(order.Dishes)),
	}
	for _, line := range order.Dishes {
		rec.DishIDs = append(rec.DishIDs, line.DishID)
		rec.Quantities = append(rec.Quantities, line.Quantity)
	}
	return rec
}

func (r orderRecord) toDomain() (*domain.Order, error) {
	if len(r.DishIDs) != len(r.Quantities) {
		return nil, fmt.Errorf("order %s has %d dish ids but %d quantities", r.ID, len(r.DishIDs), len(r.Quantities))
	}
	order := &domain.Order{
		ID:           r.ID,
		DeliverTo:    r.DeliverTo,
		MobileNumber: r.MobileNumber,
		Status:       domain.Status(r.Status),
	}
	if len(r.DishIDs) > 0 {
		order.Dishes = make([]domain.Line, len(r.DishIDs))
		for i := range r.DishIDs {
			order.Dishes[i] = domain.Line{DishID: r.DishIDs[i], Quantity: r.Quantities[i]}
		}
	}
	return order, nil
}
