package dto

import "github.com/ojamarket/backend/internal/models"

// ==============================================
// REQUEST DTOs
// ==============================================

// CreateProductRequest creates a catalog item. Price is in kobo.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"required"`
	CategoryID  int      `json:"category_id" binding:"required"`
	IsActive    *bool    `json:"is_active"`
	ImageURLs   []string `json:"image_urls"`
}

// ListProductsRequest - filters and pagination for the product list
type ListProductsRequest struct {
	PaginationRequest
	CategoryID *int   `form:"category_id"`
	IsActive   *bool  `form:"is_active"`
	Search     string `form:"search"`
}

// UploadFileRequest describes one file the client wants to upload
type UploadFileRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// UploadURLsRequest asks for upload destinations for a batch of images
type UploadURLsRequest struct {
	Files []UploadFileRequest `json:"files"`
}

// ==============================================
// RESPONSE DTOs
// ==============================================

// ProductListResponse is one page of products
type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Pagination PaginationMeta   `json:"pagination"`
}

// UploadTarget is the generated destination for one file
type UploadTarget struct {
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}
