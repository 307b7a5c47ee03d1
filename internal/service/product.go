package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	"github.com/Skotchmaster/shop_catalog/internal/refcheck"
	"github.com/Skotchmaster/shop_catalog/internal/search"
	"github.com/Skotchmaster/shop_catalog/internal/util"
)

var ErrSearchDisabled = errors.New("search index not configured")

type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	Search(ctx context.Context, q string, from, size int) (int64, []search.Document, error)
}

type ProductInput struct {
	Name        string
	Description *string
	Price       int64
	Stock       int64
	CategoryID  uint
	BrandID     uint
}

// ProductPatch holds the fields to change; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int64
	CategoryID  *uint
	BrandID     *uint
}

type ProductService struct {
	*Resource[*models.Product]
	Refs  *refcheck.Validator
	Index ProductIndex
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := refcheck.ValidateStockAndPrice(in.Stock, in.Price); err != nil {
		return nil, err
	}
	if err := s.Refs.ValidateProductRefs(ctx, in.CategoryID, in.BrandID); err != nil {
		return nil, err
	}

	p, err := s.Resource.Create(ctx, &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
	})
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

// Update applies a partial change to an active product.
func (s *ProductService) Update(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	p, err := s.Engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.State().IsDeleted() {
		return nil, apperr.ErrProductAlreadyDeleted
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	refsChanged := false
	if patch.CategoryID != nil && *patch.CategoryID != p.CategoryID {
		p.CategoryID = *patch.CategoryID
		refsChanged = true
	}
	if patch.BrandID != nil && *patch.BrandID != p.BrandID {
		p.BrandID = *patch.BrandID
		refsChanged = true
	}

	if err := refcheck.ValidateStockAndPrice(p.Stock, p.Price); err != nil {
		return nil, err
	}
	if refsChanged {
		if err := s.Refs.ValidateProductRefs(ctx, p.CategoryID, p.BrandID); err != nil {
			return nil, err
		}
	}

	if _, err := s.Engine.Save(ctx, p); err != nil {
		return nil, err
	}
	updated, err := s.Engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "updated", updated)
	s.reindex(ctx, updated)
	return updated, nil
}

func (s *ProductService) SoftDelete(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Resource.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

func (s *ProductService) Restore(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Resource.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

type SearchResult struct {
	Items      []search.Document
	TotalItems int64
	TotalPages int64
}

func (s *ProductService) Search(ctx context.Context, q string, page, size *int) (SearchResult, error) {
	if s.Index == nil {
		return SearchResult{}, ErrSearchDisabled
	}
	w, err := util.Calculate(page, size)
	if err != nil {
		return SearchResult{}, err
	}
	total, docs, err := s.Index.Search(ctx, q, w.Offset, w.Size)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Items: docs, TotalItems: total, TotalPages: util.TotalPages(total, w.Size)}, nil
}

// reindex keeps the search index in step; the database stays the source of
// truth, so failures are only logged.
func (s *ProductService) reindex(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("product_reindex_failed", "id", p.ID, "error", err)
	}
}
