package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/catalog"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/integration"
)

// fakeProductRepository is an in-memory catalog.ProductRepository
type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
	err      error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepository) FindAll(_ context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	items := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		items = append(items, *p)
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.Limit()), nil
}

func (r *fakeProductRepository) FindByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	matches := make([]catalog.Product, 0)
	for _, p := range r.products {
		for _, c := range p.Categories {
			if c == category {
				matches = append(matches, *p)
				break
			}
		}
	}
	return matches, nil
}

func (r *fakeProductRepository) Save(_ context.Context, p *catalog.Product) error {
	if r.err != nil {
		return r.err
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepository) Update(_ context.Context, p *catalog.Product) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.products[p.ID]; !ok {
		return shared.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// fakeImageStorage keeps image bytes in a map
type fakeImageStorage struct {
	files map[string][]byte
	err   error
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{files: make(map[string][]byte)}
}

func (s *fakeImageStorage) Put(_ context.Context, fileName string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.files[fileName] = data
	return fileName, nil
}

func (s *fakeImageStorage) Get(_ context.Context, fileName string) ([]byte, error) {
	data, ok := s.files[fileName]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return data, nil
}

// fakePublisher records published integration events
type fakePublisher struct {
	published []integration.Event
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event integration.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func createProductRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Running Shoes",
		Categories:  []string{"footwear", "sports"},
		Description: "Lightweight trail runners",
		Price:       decimal.NewFromInt(90),
	}
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates the product and announces the upsert", func(t *testing.T) {
		repo := newFakeProductRepository()
		publisher := &fakePublisher{}
		svc := NewProductService(repo, newFakeImageStorage(), publisher, zap.NewNop())

		resp, err := svc.Create(context.Background(), createProductRequest())

		require.NoError(t, err)
		assert.Equal(t, "Running Shoes", resp.Name)
		assert.Len(t, repo.products, 1)

		require.Len(t, publisher.published, 1)
		event, ok := publisher.published[0].(*integration.ProductUpsertedEvent)
		require.True(t, ok)
		assert.Equal(t, integration.EventTypeProductUpserted, event.EventType())
		assert.Equal(t, resp.ID.String(), event.ProductID)
		assert.Equal(t, "Running Shoes", event.Name)
		assert.True(t, event.Price.Equal(decimal.NewFromInt(90)))
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepository(), newFakeImageStorage(), &fakePublisher{}, zap.NewNop())

		req := createProductRequest()
		req.Name = "  "

		_, err := svc.Create(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT_NAME", domainErr.Code)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepository(), newFakeImageStorage(), &fakePublisher{}, zap.NewNop())

		req := createProductRequest()
		req.Price = decimal.NewFromInt(-1)

		_, err := svc.Create(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})

	t.Run("a publish failure does not fail the create", func(t *testing.T) {
		repo := newFakeProductRepository()
		svc := NewProductService(repo, newFakeImageStorage(), &fakePublisher{err: assert.AnError}, zap.NewNop())

		_, err := svc.Create(context.Background(), createProductRequest())

		require.NoError(t, err)
		assert.Len(t, repo.products, 1)
	})
}

func TestProductService_Update(t *testing.T) {
	seed := func(t *testing.T, svc *ProductService) uuid.UUID {
		t.Helper()
		resp, err := svc.Create(context.Background(), createProductRequest())
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("replaces the fields and announces the change", func(t *testing.T) {
		repo := newFakeProductRepository()
		publisher := &fakePublisher{}
		svc := NewProductService(repo, newFakeImageStorage(), publisher, zap.NewNop())
		productID := seed(t, svc)

		resp, err := svc.Update(context.Background(), productID, UpdateProductRequest{
			Name:       "Trail Shoes",
			Categories: []string{"footwear"},
			Price:      decimal.NewFromInt(80),
		})

		require.NoError(t, err)
		assert.Equal(t, "Trail Shoes", resp.Name)
		assert.Equal(t, 2, resp.Version)
		require.Len(t, publisher.published, 2)

		event := publisher.published[1].(*integration.ProductUpsertedEvent)
		assert.Equal(t, "Trail Shoes", event.Name)
		assert.True(t, event.Price.Equal(decimal.NewFromInt(80)))
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepository(), newFakeImageStorage(), &fakePublisher{}, zap.NewNop())

		_, err := svc.Update(context.Background(), uuid.New(), UpdateProductRequest{
			Name:  "Trail Shoes",
			Price: decimal.NewFromInt(80),
		})

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestProductService_Queries(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, newFakeImageStorage(), &fakePublisher{}, zap.NewNop())

	created, err := svc.Create(context.Background(), createProductRequest())
	require.NoError(t, err)

	t.Run("GetByID returns the product", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("List pages the catalog", func(t *testing.T) {
		page, err := svc.List(context.Background(), shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("GetByCategory matches any category on the product", func(t *testing.T) {
		products, err := svc.GetByCategory(context.Background(), "sports")
		require.NoError(t, err)
		assert.Len(t, products, 1)

		products, err = svc.GetByCategory(context.Background(), "electronics")
		require.NoError(t, err)
		assert.Empty(t, products)

		_, err = svc.GetByCategory(context.Background(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("Delete removes the product", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), created.ID))
		assert.Equal(t, shared.ErrNotFound, svc.Delete(context.Background(), created.ID))
	})
}

func TestProductService_Images(t *testing.T) {
	t.Run("upload stores the bytes and records the file name", func(t *testing.T) {
		repo := newFakeProductRepository()
		images := newFakeImageStorage()
		svc := NewProductService(repo, images, &fakePublisher{}, zap.NewNop())

		created, err := svc.Create(context.Background(), createProductRequest())
		require.NoError(t, err)

		resp, err := svc.UploadImage(context.Background(), created.ID, "shoes.png", []byte("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, created.ID.String()+"/shoes.png", resp.ImageFile)

		data, err := svc.GetImage(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("empty image data is rejected", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepository(), newFakeImageStorage(), &fakePublisher{}, zap.NewNop())

		_, err := svc.UploadImage(context.Background(), uuid.New(), "shoes.png", nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_IMAGE", domainErr.Code)
	})

	t.Run("a product without an image yields not found", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepository(), newFakeImageStorage(), &fakePublisher{}, zap.NewNop())

		created, err := svc.Create(context.Background(), createProductRequest())
		require.NoError(t, err)

		_, err = svc.GetImage(context.Background(), created.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}
