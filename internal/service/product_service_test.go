package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojamarket/backend/internal/api/dto"
	"github.com/ojamarket/backend/internal/models"
	"github.com/ojamarket/backend/internal/repository"
)

// ==============================================
// MOCK PRODUCT REPOSITORY
// ==============================================

type MockProductRepository struct {
	GetAllCategoriesFunc func(ctx context.Context) ([]models.Category, error)
	CreateProductFunc    func(ctx context.Context, product *models.Product) error
	GetProductsFunc      func(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]models.Product, int, error)
	GetProductByIDFunc   func(ctx context.Context, productID int) (*models.Product, error)
	CategoryExistsFunc   func(ctx context.Context, categoryID int) (bool, error)
}

func (m *MockProductRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	if m.GetAllCategoriesFunc != nil {
		return m.GetAllCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, product)
	}
	product.ID = 1
	return nil
}

func (m *MockProductRepository) GetProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]models.Product, int, error) {
	if m.GetProductsFunc != nil {
		return m.GetProductsFunc(ctx, filter, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, productID int) (*models.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, productID)
	}
	return nil, models.ErrProductNotFound
}

func (m *MockProductRepository) CategoryExists(ctx context.Context, categoryID int) (bool, error) {
	if m.CategoryExistsFunc != nil {
		return m.CategoryExistsFunc(ctx, categoryID)
	}
	return true, nil
}

// ==============================================
// CREATE PRODUCT TESTS
// ==============================================

func TestCreateProduct_Success(t *testing.T) {
	repo := &MockProductRepository{}
	service := NewProductService(repo, "https://cdn.ojamarket.dev")

	product, err := service.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Ankara Tote Bag",
		Price:      250000,
		CategoryID: 2,
		ImageURLs:  []string{"https://cdn.ojamarket.dev/products/x.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, product.ID)
	assert.True(t, product.IsActive)
	require.Len(t, product.Images, 1)
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	service := NewProductService(&MockProductRepository{}, "")

	_, err := service.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Free thing",
		Price:      0,
		CategoryID: 1,
	})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	repo := &MockProductRepository{
		CategoryExistsFunc: func(ctx context.Context, categoryID int) (bool, error) {
			return false, nil
		},
	}
	service := NewProductService(repo, "")

	_, err := service.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Orphan",
		Price:      100,
		CategoryID: 42,
	})
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

// ==============================================
// LIST PRODUCTS TESTS
// ==============================================

func TestListProducts_PaginationDefaults(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &MockProductRepository{
		GetProductsFunc: func(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]models.Product, int, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Product{{ID: 1}}, 41, nil
		},
	}
	service := NewProductService(repo, "")

	resp, err := service.ListProducts(context.Background(), dto.ListProductsRequest{})
	require.NoError(t, err)

	assert.Equal(t, DefaultProductPageSize, gotLimit)
	assert.Equal(t, 0, gotOffset)
	assert.Equal(t, 41, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestListProducts_SecondPage(t *testing.T) {
	var gotOffset int
	repo := &MockProductRepository{
		GetProductsFunc: func(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]models.Product, int, error) {
			gotOffset = offset
			return nil, 0, nil
		},
	}
	service := NewProductService(repo, "")

	_, err := service.ListProducts(context.Background(), dto.ListProductsRequest{
		PaginationRequest: dto.PaginationRequest{Page: 3, PerPage: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, gotOffset)
}

// ==============================================
// UPLOAD TARGET TESTS
// ==============================================

func TestGenerateUploadTargets(t *testing.T) {
	service := NewProductService(&MockProductRepository{}, "https://cdn.ojamarket.dev/")

	targets := service.GenerateUploadTargets([]dto.UploadFileRequest{
		{Filename: "my photo.jpg", ContentType: "image/jpeg"},
		{Filename: "my photo.jpg", ContentType: "image/jpeg"},
	})
	require.Len(t, targets, 2)

	for _, target := range targets {
		assert.True(t, strings.HasPrefix(target.Key, "products/"))
		assert.True(t, strings.HasSuffix(target.Key, "-my_photo.jpg"))
		assert.Equal(t, "https://cdn.ojamarket.dev/"+target.Key, target.PublicURL)
		assert.NotContains(t, target.Key, " ")
	}

	// same filename never collides
	assert.NotEqual(t, targets[0].Key, targets[1].Key)
}
