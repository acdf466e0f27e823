package service

import (
	"context"
	"fmt"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the credit packages on sale
type CatalogService struct {
	state  *State
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(state *State) *CatalogService {
	return &CatalogService{
		state:  state,
		logger: util.GetLogger(),
	}
}

// ListProducts returns the catalog in insertion order
func (s *CatalogService) ListProducts() []models.Product {
	return s.state.Products()
}

// GetProduct returns the product with the given id
func (s *CatalogService) GetProduct(productID string) (models.Product, error) {
	p, ok := s.state.product(productID)
	if !ok {
		return models.Product{}, apperrors.NewNotFoundError(fmt.Sprintf("product not found: %s", productID))
	}
	return p, nil
}

// AddProduct appends a product. An empty id is replaced with a fresh one.
func (s *CatalogService) AddProduct(ctx context.Context, product models.Product) (models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.AddProduct")
	defer span.End()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, p := range s.state.products {
		if p.ID == product.ID {
			return models.Product{}, apperrors.NewValidationError(
				fmt.Sprintf("product already exists: %s", product.ID),
				apperrors.ValidationDetail{Field: "id", Message: "must be unique"})
		}
	}

	products := make([]models.Product, 0, len(s.state.products)+1)
	products = append(products, s.state.products...)
	products = append(products, product)

	if err := s.state.replaceProducts(ctx, products); err != nil {
		return product, err
	}

	s.logger.Info("Product added", zap.String("product_id", product.ID))
	return product, nil
}

// UpdateProduct replaces the product with the same id
func (s *CatalogService) UpdateProduct(ctx context.Context, product models.Product) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	products := make([]models.Product, len(s.state.products))
	copy(products, s.state.products)

	found := false
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = product
			found = true
			break
		}
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("product not found: %s", product.ID))
	}

	if err := s.state.replaceProducts(ctx, products); err != nil {
		return err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID))
	return nil
}

// DeleteProduct removes a product. Orders referencing it are left alone.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	products := make([]models.Product, 0, len(s.state.products))
	for _, p := range s.state.products {
		if p.ID != productID {
			products = append(products, p)
		}
	}
	if len(products) == len(s.state.products) {
		return nil
	}

	if err := s.state.replaceProducts(ctx, products); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", productID))
	return nil
}

// ValidateProduct checks the catalog constraints on a product
func ValidateProduct(p models.Product) error {
	var details []apperrors.ValidationDetail
	if p.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "required field"})
	}
	if p.Price < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "must not be negative"})
	}
	if p.Credits < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "credits", Message: "must not be negative"})
	}
	if p.ValidityDays < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "validityDays", Message: "must be at least 1"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product", details...)
	}
	return nil
}
