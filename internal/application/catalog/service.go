// Package catalog contains the catalog service's application layer.
// Every committed product write is announced to the broker as a
// ProductUpserted integration event so downstream replicas stay current.
package catalog

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/catalog"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
	"github.com/shopstream/backend/internal/integration"
)

// ProductService handles catalog product commands and queries
type ProductService struct {
	repo      catalog.ProductRepository
	images    catalog.ImageStorage
	publisher integration.Publisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo catalog.ProductRepository, images catalog.ImageStorage, publisher integration.Publisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		images:    images,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates a new catalog product and announces it
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "create")
	defer span.End()

	product, err := catalog.NewProduct(req.Name, req.Categories, req.Description, req.ImageFile, req.Price)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announce(ctx, product)

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces the product's catalog fields and announces the change
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "update",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID.String()),
	)
	defer span.End()

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := product.Update(req.Name, req.Categories, req.Description, req.ImageFile, req.Price); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announce(ctx, product)

	s.logger.Info("product updated",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", productID.String()))
	return nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ProductResponse], error) {
	page, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	return shared.Paginated[ProductResponse]{
		Items:      toProductResponses(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetByCategory returns all products carrying the given category
func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]ProductResponse, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// UploadImage stores the image bytes and records the stored file name on
// the product. The file is keyed under the product id so a re-upload
// replaces the previous image.
func (s *ProductService) UploadImage(ctx context.Context, productID uuid.UUID, fileName string, data []byte) (*ProductResponse, error) {
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image data cannot be empty")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	storedName, err := s.images.Put(ctx, path.Join(productID.String(), fileName), data)
	if err != nil {
		return nil, fmt.Errorf("failed to store product image: %w", err)
	}

	if err := product.Update(product.Name, product.Categories, product.Description, storedName, product.Price); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product image stored",
		zap.String("product_id", product.ID.String()),
		zap.String("image_file", storedName),
	)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetImage returns the stored image bytes for a product
func (s *ProductService) GetImage(ctx context.Context, productID uuid.UUID) ([]byte, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ImageFile == "" {
		return nil, shared.ErrNotFound
	}
	return s.images.Get(ctx, product.ImageFile)
}

// announce publishes the product as a ProductUpserted integration event.
// A publish failure is logged, not surfaced: the write already committed
// and the next successful upsert carries the full current state.
func (s *ProductService) announce(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	event := integration.NewProductUpsertedEvent(product.ID.String(), product.Name, product.Price)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish product upserted event",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}
