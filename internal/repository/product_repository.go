package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// PRODUCT REPOSITORY
// ==============================================

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// ==============================================
// CATEGORIES
// ==============================================

// GetAllCategories returns every category, for the product-creation form
func (r *ProductRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, created_at FROM categories ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

// ==============================================
// CREATE PRODUCT
// ==============================================

// CreateProduct inserts a product and its image rows in one transaction
func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (name, description, price, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.CategoryID,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	for i := range product.Images {
		img := &product.Images[i]
		img.ProductID = product.ID

		err = tx.QueryRow(ctx,
			`INSERT INTO product_images (product_id, url) VALUES ($1, $2) RETURNING id`,
			img.ProductID, img.URL,
		).Scan(&img.ID)
		if err != nil {
			return fmt.Errorf("failed to create product image: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	return nil
}

// ==============================================
// GET PRODUCTS
// ==============================================

// ProductFilter narrows GetProducts results
type ProductFilter struct {
	CategoryID *int
	IsActive   *bool
	Search     string
}

// GetProducts returns one page of products plus the unpaged total
func (r *ProductRepository) GetProducts(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND p.is_active = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args = append(args, limit, offset)
	query := `
		SELECT p.id, p.name, p.description, p.price, p.category_id, p.is_active,
		       p.created_at, p.updated_at, c.id, c.name, c.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id` + where +
		fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var c models.Category
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &c.ID, &c.Name, &c.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Category = &c
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read products: %w", err)
	}

	if err := r.loadImages(ctx, products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetProductByID returns one product with its category and images
func (r *ProductRepository) GetProductByID(ctx context.Context, productID int) (*models.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.category_id, p.is_active,
		       p.created_at, p.updated_at, c.id, c.name, c.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	var p models.Product
	var c models.Category
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &c.ID, &c.Name, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p.Category = &c

	products := []models.Product{p}
	if err := r.loadImages(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// CategoryExists checks a category id before product creation
func (r *ProductRepository) CategoryExists(ctx context.Context, categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}

func (r *ProductRepository) loadImages(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int, len(products))
	index := make(map[int]*models.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = &products[i]
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, product_id, url FROM product_images WHERE product_id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to get product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL); err != nil {
			return fmt.Errorf("failed to scan product image: %w", err)
		}
		if p, ok := index[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}

	return rows.Err()
}
