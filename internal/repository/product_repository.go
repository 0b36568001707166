package repository

import (
	"context"
	"fmt"

	"anandam/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, description, price, original_price, category, sub_category,
	images, sizes, ratings, num_reviews, stock, is_offer, is_customizable, created_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Category,
		&p.SubCategory, &p.Images, &p.Sizes, &p.Ratings, &p.NumReviews,
		&p.Stock, &p.IsOffer, &p.IsCustomizable, &p.CreatedAt,
	)
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// List retrieves products matching the filter, newest first.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%' OR sub_category ILIKE '%%' || $1 || '%%')
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, filter.Search, string(filter.Category), limit, filter.Offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("search", filter.Search).
			Str("category", string(filter.Category)).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ANY($1) ORDER BY name`, productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return r.collect(rows)
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, original_price, category, sub_category,
			images, sizes, ratings, num_reviews, stock, is_offer, is_customizable, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.SubCategory,
		p.Images, p.Sizes, p.Ratings, p.NumReviews, p.Stock, p.IsOffer, p.IsCustomizable, p.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Msg("product created successfully")
	return nil
}

// Update replaces the mutable fields of a product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, original_price = $5, category = $6,
			sub_category = $7, images = $8, sizes = $9, stock = $10, is_offer = $11,
			is_customizable = $12
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category,
		p.SubCategory, p.Images, p.Sizes, p.Stock, p.IsOffer, p.IsCustomizable,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the catalogue.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("product_id", id).Msg("product deleted")
	return nil
}

// DecrementStock atomically reduces stock within a transaction. The WHERE
// clause guards against overselling under concurrent checkouts.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id string, qty int) error {
	query := `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, id, qty)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Int("qty", qty).Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("product_id", id).Int("qty", qty).Msg("insufficient stock")
		return model.ErrInsufficientStock
	}

	return nil
}

// AdjustStock adds delta (possibly negative) to a product's stock.
func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET stock = GREATEST(0, stock + $2) WHERE id = $1`, id, delta)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Int("delta", delta).Msg("failed to adjust stock")
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// ListLowStock retrieves products at or below the given stock threshold.
func (r *productRepository) ListLowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE stock <= $1 ORDER BY stock`, productColumns)

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		r.logger.Error().Err(err).Int("threshold", threshold).Msg("failed to query low stock products")
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}

	return r.collect(rows)
}

// AddReview inserts a review and refreshes the product's rating aggregate in
// one transaction.
func (r *productRepository) AddReview(ctx context.Context, review *model.Review) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, review.ID, review.ProductID, review.UserName, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET ratings = sub.avg_rating, num_reviews = sub.review_count
		FROM (
			SELECT AVG(rating)::numeric(3,2) AS avg_rating, COUNT(*) AS review_count
			FROM reviews WHERE product_id = $1
		) sub
		WHERE id = $1
	`, review.ProductID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to refresh rating aggregate")
		return fmt.Errorf("failed to refresh rating aggregate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit review transaction")
		return fmt.Errorf("failed to commit review: %w", err)
	}

	r.logger.Debug().Str("product_id", review.ProductID).Msg("review added")
	return nil
}

// ListReviews retrieves a product's reviews, newest first.
func (r *productRepository) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
