package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/pkg/orm"
)

// SaleSummary aggregates the sales table.
type SaleSummary struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// SaleRepository handles database operations for Sale.
type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx).Model(&models.Sale{})
}

// All returns every sale ordered by id ascending.
func (r *SaleRepository) All(ctx context.Context) ([]models.Sale, error) {
	sales := []models.Sale{}
	err := r.query(ctx).Order("id asc").Get(&sales)
	return sales, err
}

// Find looks up a sale by primary key. Missing rows yield orm.ErrRecordNotFound.
func (r *SaleRepository) Find(ctx context.Context, id uint) (models.Sale, error) {
	var sale models.Sale
	err := r.query(ctx).Where("id = ?", id).First(&sale)
	return sale, err
}

// Create persists a new sale.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return orm.New(r.db).WithContext(ctx).Create(sale)
}

// Delete removes the sale with id in a single statement and reports whether
// a row was removed.
func (r *SaleRepository) Delete(ctx context.Context, id uint) (bool, error) {
	n, err := orm.New(r.db).WithContext(ctx).Delete(&models.Sale{}, id)
	return n > 0, err
}

// Summary counts the sales and sums their totals.
func (r *SaleRepository) Summary(ctx context.Context) (SaleSummary, error) {
	count, err := r.query(ctx).Count()
	if err != nil {
		return SaleSummary{}, err
	}
	total, err := r.query(ctx).Sum("total")
	if err != nil {
		return SaleSummary{}, err
	}
	return SaleSummary{Count: count, Total: total}, nil
}
