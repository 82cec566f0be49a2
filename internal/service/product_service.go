package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ojamarket/backend/internal/api/dto"
	"github.com/ojamarket/backend/internal/models"
	"github.com/ojamarket/backend/internal/repository"
)

// ==============================================
// REPOSITORY INTERFACE (for testing)
// ==============================================

type ProductRepositoryInterface interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]models.Product, int, error)
	GetProductByID(ctx context.Context, productID int) (*models.Product, error)
	CategoryExists(ctx context.Context, categoryID int) (bool, error)
}

// ==============================================
// BUSINESS RULES (Constants)
// ==============================================

const (
	DefaultProductPageSize = 20
	MaxProductPageSize     = 100
	uploadKeyPrefix        = "products"
)

// ==============================================
// PRODUCT SERVICE
// ==============================================

type ProductService struct {
	productRepo ProductRepositoryInterface
	cdnBaseURL  string
}

func NewProductService(productRepo ProductRepositoryInterface, cdnBaseURL string) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cdnBaseURL:  strings.TrimSuffix(cdnBaseURL, "/"),
	}
}

// GetCategories lists all categories for the product-creation form
func (s *ProductService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.productRepo.GetAllCategories(ctx)
}

// CreateProduct validates and inserts a new catalog item with its images
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*models.Product, error) {
	if req.Price <= 0 {
		return nil, models.ErrInvalidPrice
	}

	exists, err := s.productRepo.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return nil, models.ErrCategoryNotFound
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &models.Product{
		Name:        req.Name,
		Description: pgtype.Text{String: req.Description, Valid: req.Description != ""},
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		IsActive:    isActive,
	}
	for _, url := range req.ImageURLs {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts returns one filtered, paginated page of products
func (s *ProductService) ListProducts(ctx context.Context, req dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = DefaultProductPageSize
	}
	if perPage > MaxProductPageSize {
		perPage = MaxProductPageSize
	}

	filter := repository.ProductFilter{
		CategoryID: req.CategoryID,
		IsActive:   req.IsActive,
		Search:     req.Search,
	}

	products, total, err := s.productRepo.GetProducts(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	totalPages := (total + perPage - 1) / perPage

	return &dto.ProductListResponse{
		Products: products,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetProduct returns one product with category and images
func (s *ProductService) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	return s.productRepo.GetProductByID(ctx, productID)
}

// GenerateUploadTargets builds storage keys and public URLs for a batch of
// image uploads. Keys are uuid-prefixed so concurrent uploads of files with
// the same name never collide.
func (s *ProductService) GenerateUploadTargets(files []dto.UploadFileRequest) []dto.UploadTarget {
	targets := make([]dto.UploadTarget, 0, len(files))

	for _, f := range files {
		key := fmt.Sprintf("%s/%s-%s", uploadKeyPrefix, uuid.NewString(), sanitizeFilename(f.Filename))
		targets = append(targets, dto.UploadTarget{
			Key:       key,
			PublicURL: s.cdnBaseURL + "/" + key,
		})
	}

	return targets
}

// sanitizeFilename strips path components and spaces from a client filename
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ReplaceAll(base, " ", "_")
}
