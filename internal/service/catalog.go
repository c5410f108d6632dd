package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avkuzmin/shop-backend/internal/es"
	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/mykafka"
	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

// CascadeDepth controls how far a deactivation propagates down the
// category tree. Deployments want different behaviors here, so it is a
// policy knob rather than a hardcoded rule.
type CascadeDepth int

const (
	CascadeCategoryOnly CascadeDepth = iota
	CascadeSubCategories
	CascadeFull
)

func ParseCascadeDepth(s string) CascadeDepth {
	switch strings.ToLower(s) {
	case "category":
		return CascadeCategoryOnly
	case "full":
		return CascadeFull
	default:
		return CascadeSubCategories
	}
}

type CatalogService struct {
	Repo     *repo.GormRepo
	Depth    CascadeDepth
	Producer *mykafka.Producer
	Indexer  *es.ProductIndexer
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "catalog_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, prod *models.Product) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", prod.ID, "error", err)
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	cat := &models.Category{Name: req.Name, IsActive: true}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, req.Name)
		}
		return nil, err
	}

	s.publish(ctx, cat.Name, map[string]any{"type": "category_created", "categoryID": cat.ID, "name": cat.Name})
	return cat, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateSubCategory(ctx context.Context, req transport.CreateSubCategoryRequest) (*models.SubCategory, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if _, err := s.Repo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: parent category does not exist", ErrValidation)
		}
		return nil, err
	}

	sub := &models.SubCategory{Name: req.Name, CategoryID: req.CategoryID, IsActive: true}
	if err := s.Repo.CreateSubCategory(ctx, sub); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: sub category %q already exists", ErrConflict, req.Name)
		}
		return nil, err
	}

	s.publish(ctx, sub.Name, map[string]any{"type": "sub_category_created", "subCategoryID": sub.ID, "name": sub.Name})
	return sub, nil
}

// DeactivateCategory flips the category inactive and walks the tree below it
// inside one transaction. The traversal runs off an explicit worklist, not
// recursion, so a partially applied cascade can never be left behind.
func (s *CatalogService) DeactivateCategory(ctx context.Context, name string) (*models.Category, error) {
	cat, err := s.Repo.GetCategoryByName(ctx, name)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
		}
		return nil, err
	}
	if !cat.IsActive {
		return nil, fmt.Errorf("%w: category already disabled", ErrConflict)
	}

	now := time.Now().UTC()
	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.SetCategoryActive(ctx, cat.ID, false); err != nil {
			return err
		}
		if s.Depth == CascadeCategoryOnly {
			return nil
		}
		return s.deactivateBelow(ctx, tx, []uint{cat.ID}, now)
	})
	if err != nil {
		return nil, err
	}

	cat.IsActive = false
	s.publish(ctx, cat.Name, map[string]any{"type": "category_disabled", "categoryID": cat.ID, "name": cat.Name})
	return cat, nil
}

// deactivateBelow walks category ids off a worklist, deactivating every
// currently-active subcategory underneath, and (at full depth) their products.
func (s *CatalogService) deactivateBelow(ctx context.Context, tx *repo.GormRepo, categoryIDs []uint, now time.Time) error {
	work := append([]uint(nil), categoryIDs...)
	for len(work) > 0 {
		id := work[0]
		work = work[1:]

		subs, err := tx.ListSubCategories(ctx, id, true)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			continue
		}

		subIDs := make([]uint, 0, len(subs))
		for _, sub := range subs {
			subIDs = append(subIDs, sub.ID)
		}

		if err := tx.DeactivateSubCategories(ctx, subIDs); err != nil {
			return err
		}
		if s.Depth == CascadeFull {
			if err := tx.DeactivateProductsBySubCategories(ctx, subIDs, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *CatalogService) ActivateCategory(ctx context.Context, name string) (*models.Category, error) {
	cat, err := s.Repo.GetCategoryByName(ctx, name)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
		}
		return nil, err
	}
	if cat.IsActive {
		return nil, fmt.Errorf("%w: category already activated", ErrConflict)
	}

	// Activation does not touch children; they are re-enabled explicitly.
	if err := s.Repo.SetCategoryActive(ctx, cat.ID, true); err != nil {
		return nil, err
	}

	cat.IsActive = true
	s.publish(ctx, cat.Name, map[string]any{"type": "category_enabled", "categoryID": cat.ID, "name": cat.Name})
	return cat, nil
}

func (s *CatalogService) DeactivateSubCategory(ctx context.Context, name string) (*models.SubCategory, error) {
	sub, err := s.Repo.GetSubCategoryByName(ctx, name)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: sub category %q", ErrNotFound, name)
		}
		return nil, err
	}
	if !sub.IsActive {
		return nil, fmt.Errorf("%w: sub category already disabled", ErrConflict)
	}

	now := time.Now().UTC()
	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.SetSubCategoryActive(ctx, sub.ID, false); err != nil {
			return err
		}
		if s.Depth == CascadeFull {
			return tx.DeactivateProductsBySubCategories(ctx, []uint{sub.ID}, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sub.IsActive = false
	s.publish(ctx, sub.Name, map[string]any{"type": "sub_category_disabled", "subCategoryID": sub.ID, "name": sub.Name})
	return sub, nil
}

func (s *CatalogService) ActivateSubCategory(ctx context.Context, name string) (*models.SubCategory, error) {
	sub, err := s.Repo.GetSubCategoryByName(ctx, name)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: sub category %q", ErrNotFound, name)
		}
		return nil, err
	}
	if sub.IsActive {
		return nil, fmt.Errorf("%w: sub category already activated", ErrConflict)
	}

	parent, err := s.Repo.GetCategoryByID(ctx, sub.CategoryID)
	if err != nil {
		return nil, err
	}
	if !parent.IsActive {
		return nil, fmt.Errorf("%w: can't activate sub category with deactivated parent category", ErrValidation)
	}

	if err := s.Repo.SetSubCategoryActive(ctx, sub.ID, true); err != nil {
		return nil, err
	}

	sub.IsActive = true
	s.publish(ctx, sub.Name, map[string]any{"type": "sub_category_enabled", "subCategoryID": sub.ID, "name": sub.Name})
	return sub, nil
}

// ActivateSubCategories bulk-activates every inactive direct subcategory of
// an active category. Products stay untouched.
func (s *CatalogService) ActivateSubCategories(ctx context.Context, categoryName string) (*transport.ActivateSubCategoriesResponse, error) {
	cat, err := s.Repo.GetCategoryByName(ctx, categoryName)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
		}
		return nil, err
	}
	if !cat.IsActive {
		return nil, fmt.Errorf("%w: parent category deactivated, enable it first", ErrValidation)
	}

	var subs []models.SubCategory
	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		subs, err = tx.ActivateSubCategoriesOfCategory(ctx, cat.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &transport.ActivateSubCategoriesResponse{ParentCategory: cat.Name}
	for _, sub := range subs {
		resp.SubCategories = append(resp.SubCategories, transport.SubCategoryStatus{
			Name:     sub.Name,
			IsActive: sub.IsActive,
		})
	}

	s.publish(ctx, cat.Name, map[string]any{"type": "sub_categories_enabled", "categoryID": cat.ID})
	return resp, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if _, err := s.Repo.GetSubCategoryByID(ctx, req.SubCategoryID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: sub category with id %d does not exist", ErrValidation, req.SubCategoryID)
		}
		return nil, err
	}

	prod := &models.Product{
		SubCategoryID: req.SubCategoryID,
		Name:          req.Name,
		Brand:         req.Brand,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity,
		IsActive:      true,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.publish(ctx, prod.Name, map[string]any{"type": "product_created", "productID": prod.ID, "name": prod.Name})
	s.index(ctx, prod)
	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, req transport.UpdateProductRequest) (*models.Product, error) {
	if req.ID == 0 {
		return nil, fmt.Errorf("%w: product id required", ErrValidation)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.UpdateProduct(ctx, req)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product with id %d", ErrNotFound, req.ID)
		}
		return nil, err
	}

	s.publish(ctx, prod.Name, map[string]any{"type": "product_updated", "productID": prod.ID, "name": prod.Name})
	s.index(ctx, prod)
	return prod, nil
}

func (s *CatalogService) SetProductActive(ctx context.Context, req transport.ProductStatusRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, req.ID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product with id %d", ErrNotFound, req.ID)
		}
		return nil, err
	}
	if prod.IsActive == req.IsActive {
		if req.IsActive {
			return nil, fmt.Errorf("%w: product already activated", ErrConflict)
		}
		return nil, fmt.Errorf("%w: product already deactivated", ErrConflict)
	}

	prod, err = s.Repo.SetProductActive(ctx, req.ID, req.IsActive, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, prod.Name, map[string]any{"type": "product_status_updated", "productID": prod.ID, "is_active": prod.IsActive})
	s.index(ctx, prod)
	return prod, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, opts repo.ProductListOptions) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, opts)
}
