package adapters

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-api/internal/features/products/domain"

	"github.com/jmoiron/sqlx"
)

// imageList stores the product image URLs as a JSONB column.
type imageList []string

func (l imageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *imageList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into imageList", src)
	}
}

type productRow struct {
	ID            string    `db:"id"`
	ProductID     string    `db:"product_id"`
	DesignID      string    `db:"design_id"`
	ProductTitle  string    `db:"product_title"`
	ProductDesc   string    `db:"product_desc"`
	Category      string    `db:"category"`
	Composition   string    `db:"composition"`
	GSM           string    `db:"gsm"`
	WashCare      string    `db:"wash_care"`
	Price         float64   `db:"price"`
	Discount      float64   `db:"discount"`
	Gender        string    `db:"gender"`
	ProductImages imageList `db:"product_images"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type variantRow struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	Size      string `db:"size"`
	Quantity  int    `db:"quantity"`
	ColorName string `db:"color_name"`
	ColorHex  string `db:"color_hex"`
}

func (r productRow) toDomain(variants []domain.Variant) domain.Product {
	if variants == nil {
		variants = []domain.Variant{}
	}
	return domain.Product{
		ID:            r.ID,
		ProductID:     r.ProductID,
		DesignID:      r.DesignID,
		ProductTitle:  r.ProductTitle,
		ProductDesc:   r.ProductDesc,
		Category:      r.Category,
		Composition:   r.Composition,
		GSM:           r.GSM,
		WashCare:      r.WashCare,
		Price:         r.Price,
		Discount:      r.Discount,
		Gender:        r.Gender,
		ProductImages: r.ProductImages,
		Variants:      variants,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r variantRow) toDomain() domain.Variant {
	return domain.Variant{
		ID:       r.ID,
		Size:     r.Size,
		Quantity: r.Quantity,
		Color: domain.Color{
			Name:    r.ColorName,
			HexCode: r.ColorHex,
		},
	}
}

const productColumns = `id, product_id, design_id, product_title, product_desc,
	category, composition, gsm, wash_care, price, discount, gender,
	product_images, created_at, updated_at`

// PostgresProductRepository persists products and their variants in Postgres.
type PostgresProductRepository struct {
	db *sqlx.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository.
func NewPostgresProductRepository(db *sqlx.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// List returns all products with their variants attached.
func (r *PostgresProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.selectProducts(ctx,
		fmt.Sprintf(`SELECT %s FROM products ORDER BY created_at DESC`, productColumns))
}

// GetByProductID returns the product with the given product id, or nil.
func (r *PostgresProductRepository) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	return r.getByField(ctx, "product_id", productID)
}

// GetByDesignID returns the product with the given design id, or nil.
func (r *PostgresProductRepository) GetByDesignID(ctx context.Context, designID string) (*domain.Product, error) {
	return r.getByField(ctx, "design_id", designID)
}

// GetByID returns the product with the given internal id, or nil.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getByField(ctx, "id", id)
}

func (r *PostgresProductRepository) getByField(ctx context.Context, field, value string) (*domain.Product, error) {
	var row productRow
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1`, productColumns, field)
	if err := r.db.GetContext(ctx, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch product by %s: %w", field, err)
	}

	variants, err := r.variantsFor(ctx, []string{row.ID})
	if err != nil {
		return nil, err
	}

	product := row.toDomain(variants[row.ID])
	return &product, nil
}

// ListByCategory returns all products in the given category.
func (r *PostgresProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.selectProducts(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 ORDER BY created_at DESC`, productColumns),
		category)
}

// Search returns products whose product id, title or category contains the
// query, case-insensitively.
func (r *PostgresProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return r.selectProducts(ctx,
		fmt.Sprintf(`SELECT %s FROM products
			WHERE product_id ILIKE '%%' || $1 || '%%'
			   OR product_title ILIKE '%%' || $1 || '%%'
			   OR category ILIKE '%%' || $1 || '%%'
			ORDER BY created_at DESC`, productColumns),
		query)
}

func (r *PostgresProductRepository) selectProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Product{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	variants, err := r.variantsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain(variants[row.ID]))
	}
	return products, nil
}

// variantsFor loads the variants of the given products, keyed by product id.
func (r *PostgresProductRepository) variantsFor(ctx context.Context, productIDs []string) (map[string][]domain.Variant, error) {
	query, args, err := sqlx.In(`
		SELECT id, product_id, size, quantity, color_name, color_hex
		FROM product_variants
		WHERE product_id IN (?)
		ORDER BY size`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build variants query: %w", err)
	}

	var rows []variantRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}

	variants := make(map[string][]domain.Variant, len(productIDs))
	for _, row := range rows {
		variants[row.ProductID] = append(variants[row.ProductID], row.toDomain())
	}
	return variants, nil
}

// CategoryExists reports whether a category with the given href exists.
func (r *PostgresProductRepository) CategoryExists(ctx context.Context, href string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE href = $1)`, href)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// ProductIDTaken reports whether a product other than excludeID uses productID.
func (r *PostgresProductRepository) ProductIDTaken(ctx context.Context, productID, excludeID string) (bool, error) {
	return r.fieldTaken(ctx, "product_id", productID, excludeID)
}

// DesignIDTaken reports whether a product other than excludeID uses designID.
func (r *PostgresProductRepository) DesignIDTaken(ctx context.Context, designID, excludeID string) (bool, error) {
	return r.fieldTaken(ctx, "design_id", designID, excludeID)
}

func (r *PostgresProductRepository) fieldTaken(ctx context.Context, field, value, excludeID string) (bool, error) {
	var exists bool
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM products WHERE %s = $1 AND id <> $2)`, field)
	if err := r.db.GetContext(ctx, &exists, query, value, excludeID); err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	return exists, nil
}

// Create inserts the product and its variants in one transaction.
func (r *PostgresProductRepository) Create(ctx context.Context, product domain.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (
			id, product_id, design_id, product_title, product_desc,
			category, composition, gsm, wash_care, price, discount, gender,
			product_images, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		product.ID, product.ProductID, product.DesignID, product.ProductTitle,
		product.ProductDesc, product.Category, product.Composition, product.GSM,
		product.WashCare, product.Price, product.Discount, product.Gender,
		imageList(product.ProductImages), product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if err := insertVariants(ctx, tx, product.ID, product.Variants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product creation: %w", err)
	}
	return nil
}

// Update rewrites the product row, replaces its variant set, and propagates
// the (possibly changed) product id to order items referencing this product.
func (r *PostgresProductRepository) Update(ctx context.Context, product domain.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products SET
			product_id = $1, design_id = $2, product_title = $3,
			product_desc = $4, category = $5, composition = $6, gsm = $7,
			wash_care = $8, price = $9, discount = $10, gender = $11,
			product_images = $12, updated_at = $13
		WHERE id = $14`,
		product.ProductID, product.DesignID, product.ProductTitle,
		product.ProductDesc, product.Category, product.Composition, product.GSM,
		product.WashCare, product.Price, product.Discount, product.Gender,
		imageList(product.ProductImages), product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_variants WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}

	if err := insertVariants(ctx, tx, product.ID, product.Variants); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE order_items SET product_id = $1 WHERE product_db_id = $2`,
		product.ProductID, product.ID); err != nil {
		return fmt.Errorf("failed to propagate product id to order items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}
	return nil
}

// Delete removes the product and its variants in one transaction.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_variants WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete variants: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product deletion: %w", err)
	}
	return nil
}

func insertVariants(ctx context.Context, tx *sqlx.Tx, productID string, variants []domain.Variant) error {
	for _, v := range variants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, size, quantity, color_name, color_hex)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			v.ID, productID, v.Size, v.Quantity, v.Color.Name, v.Color.HexCode)
		if err != nil {
			return fmt.Errorf("failed to insert variant %s: %w", v.ID, err)
		}
	}
	return nil
}
