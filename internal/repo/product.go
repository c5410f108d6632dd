package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/transport"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// GetProductForUpdate reads the product under a row lock so two concurrent
// reservations cannot both pass the stock check against a stale read.
func (r *GormRepo) GetProductForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	q := r.withRowLock(r.DB.WithContext(ctx))
	if err := q.First(&prod, id).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// DecrementStock atomically takes quantity off the shelf. Returns false when
// the remaining stock no longer covers the request.
func (r *GormRepo) DecrementStock(ctx context.Context, id uint, quantity uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, req transport.UpdateProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, req.ID).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Brand != nil {
		prod.Brand = *req.Brand
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Quantity != nil {
		prod.Quantity = *req.Quantity
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) SetProductActive(ctx context.Context, id uint, active bool, now time.Time) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	prod.IsActive = active
	if active {
		prod.DeletedAt = nil
	} else {
		prod.DeletedAt = &now
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

type ProductListOptions struct {
	Offset       int
	Limit        int
	Name         string
	Brand        string
	OrderByPrice string // "asc", "desc" or empty
}

func (r *GormRepo) ListProducts(ctx context.Context, opts ProductListOptions) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if opts.Name != "" {
		q = q.Where("name = ?", opts.Name)
	}
	if opts.Brand != "" {
		q = q.Where("brand = ?", opts.Brand)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	switch opts.OrderByPrice {
	case "asc":
		q = q.Order("price ASC")
	case "desc":
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var items []models.Product
	if err := q.Offset(opts.Offset).Limit(opts.Limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
