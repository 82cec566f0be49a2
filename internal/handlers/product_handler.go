package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ojamarket/backend/internal/api/dto"
	"github.com/ojamarket/backend/internal/auth"
	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// SERVICE INTERFACE (for testing)
// ==============================================

type ProductService interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, req dto.ListProductsRequest) (*dto.ProductListResponse, error)
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
	GenerateUploadTargets(files []dto.UploadFileRequest) []dto.UploadTarget
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type ProductHandler struct {
	service ProductService
	codec   *auth.TokenCodec
}

func NewProductHandler(service ProductService, codec *auth.TokenCodec) *ProductHandler {
	return &ProductHandler{service: service, codec: codec}
}

// ==============================================
// ENDPOINTS
// ==============================================

// GetCategories handles GET /api/admin/product/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.GetCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, categories, "Categories retrieved successfully")
}

// CreateProduct handles POST /api/admin/product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, product, "Product created successfully"))
}

// ListProducts handles GET /api/admin/product
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListProducts(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, resp, "Products retrieved successfully")
}

// GetProduct handles GET /api/admin/product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		respondError(c, http.StatusBadRequest, "id must be a positive number")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, product, "Product retrieved successfully")
}

// GetUploadURLs handles POST /api/admin/product/upload-urls
func (h *ProductHandler) GetUploadURLs(c *gin.Context) {
	var req dto.UploadURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Files) == 0 {
		respondError(c, http.StatusBadRequest, "files array is required with at least one file")
		return
	}
	for _, f := range req.Files {
		if f.Filename == "" || f.ContentType == "" {
			respondError(c, http.StatusBadRequest, "Each file must have filename and contentType")
			return
		}
	}

	targets := h.service.GenerateUploadTargets(req.Files)

	respondSuccess(c, targets, "Upload URLs generated successfully")
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

func (h *ProductHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/admin/product")
	group.Use(RequireAuth(h.codec), RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	{
		group.GET("/categories", h.GetCategories)
		group.POST("", h.CreateProduct)
		group.GET("", h.ListProducts)
		group.GET("/:id", h.GetProduct)
		group.POST("/upload-urls", h.GetUploadURLs)
	}
}
