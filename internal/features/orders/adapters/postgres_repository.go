package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-api/internal/features/orders/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresOrderRepository implements ports.OrderRepository on Postgres.
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository.
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// orderRow is the flat database representation of an order.
type orderRow struct {
	ID           string    `db:"id"`
	OrderNumber  string    `db:"order_number"`
	Status       string    `db:"status"`
	Address      string    `db:"ship_address"`
	City         string    `db:"ship_city"`
	Email        string    `db:"ship_email"`
	FirstName    string    `db:"ship_first_name"`
	LastName     string    `db:"ship_last_name"`
	PhoneNumber  string    `db:"ship_phone_number"`
	Zip          string    `db:"ship_zip"`
	Total        float64   `db:"total"`
	CancelReason string    `db:"cancel_reason"`
	TrackingID   string    `db:"tracking_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// orderItemRow is the flat database representation of an order item.
type orderItemRow struct {
	ID           string  `db:"id"`
	OrderNumber  string  `db:"order_number"`
	ProductID    string  `db:"product_id"`
	ProductDBID  string  `db:"product_db_id"`
	ProductTitle *string `db:"product_title"`
	VariantID    string  `db:"variant_id"`
	VariantSize  string  `db:"variant_size"`
	ColorName    string  `db:"color_name"`
	ColorHexCode string  `db:"color_hex_code"`
	Quantity     int     `db:"quantity"`
	Discount     float64 `db:"discount"`
	Total        float64 `db:"total"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:          r.ID,
		OrderNumber: r.OrderNumber,
		Status:      domain.OrderStatus(r.Status),
		ShippingInfo: domain.ShippingInfo{
			Address:     r.Address,
			City:        r.City,
			Email:       r.Email,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			PhoneNumber: r.PhoneNumber,
			Zip:         r.Zip,
		},
		Total:        r.Total,
		CancelReason: r.CancelReason,
		TrackingID:   r.TrackingID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r orderItemRow) toDomain() domain.OrderItem {
	item := domain.OrderItem{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductDBID: r.ProductDBID,
		Variant: domain.ItemVariant{
			VariantID: r.VariantID,
			Size:      r.VariantSize,
			Color:     domain.Color{Name: r.ColorName, HexCode: r.ColorHexCode},
			Quantity:  r.Quantity,
		},
		Discount: r.Discount,
		Total:    r.Total,
	}
	if r.ProductTitle != nil {
		item.ProductTitle = *r.ProductTitle
	}
	return item
}

// ProductExists reports whether a product with the given business id exists.
func (r *PostgresOrderRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// OrderNumberExists reports whether an order already uses the given number.
func (r *PostgresOrderRepository) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)`, orderNumber)
	if err != nil {
		return false, fmt.Errorf("failed to check order number: %w", err)
	}
	return exists, nil
}

// CreateOrder persists the order, its items and the stock decrements in one
// transaction. The decrement is conditional (quantity >= requested) so the
// zero-floor invariant holds under concurrent placements; zero rows affected
// means the variant is unknown or short and the whole placement rolls back.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	decrement := `
		UPDATE product_variants
		SET quantity = quantity - $1
		WHERE id = $2 AND quantity >= $1
	`

	// Items are processed in the order supplied; repeated references to the
	// same variant accumulate within the transaction.
	for _, item := range order.Items {
		res, err := tx.ExecContext(ctx, decrement, item.Variant.Quantity, item.Variant.VariantID)
		if err != nil {
			return fmt.Errorf("failed to decrement variant %s: %w", item.Variant.VariantID, err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if rows == 0 {
			return domain.ErrInsufficientStock
		}
	}

	insertOrder := `
		INSERT INTO orders (
			id, order_number, status,
			ship_address, ship_city, ship_email, ship_first_name,
			ship_last_name, ship_phone_number, ship_zip,
			total, cancel_reason, tracking_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, '', '', $12, $13)
	`

	_, err = tx.ExecContext(ctx, insertOrder,
		order.ID, order.OrderNumber, string(order.Status),
		order.ShippingInfo.Address, order.ShippingInfo.City, order.ShippingInfo.Email,
		order.ShippingInfo.FirstName, order.ShippingInfo.LastName,
		order.ShippingInfo.PhoneNumber, order.ShippingInfo.Zip,
		order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderNumberTaken
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (
			id, order_number, product_id, product_db_id,
			variant_id, variant_size, color_name, color_hex_code,
			quantity, discount, total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx, insertItem,
			item.ID, order.OrderNumber, item.ProductID, item.ProductDBID,
			item.Variant.VariantID, item.Variant.Size,
			item.Variant.Color.Name, item.Variant.Color.HexCode,
			item.Variant.Quantity, item.Discount, item.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// GetByNumber retrieves an order with its items, or nil if absent.
func (r *PostgresOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM orders WHERE order_number = $1`, orderNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order := row.toDomain()
	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// List retrieves all orders with their items, newest first.
func (r *PostgresOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return r.ordersWithItems(ctx, rows)
}

// ListByStatus retrieves orders in the given state, newest first.
func (r *PostgresOrderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM orders WHERE status = $1 ORDER BY created_at DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by status: %w", err)
	}

	return r.ordersWithItems(ctx, rows)
}

func (r *PostgresOrderRepository) ordersWithItems(ctx context.Context, rows []orderRow) ([]domain.Order, error) {
	orders := make([]domain.Order, len(rows))
	for i, row := range rows {
		orders[i] = row.toDomain()
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items for the given orders in one batched query,
// joining the product title for display.
func (r *PostgresOrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	numbers := make([]string, len(orders))
	byNumber := make(map[string]*domain.Order, len(orders))
	for i := range orders {
		numbers[i] = orders[i].OrderNumber
		byNumber[orders[i].OrderNumber] = &orders[i]
	}

	query, args, err := sqlx.In(`
		SELECT oi.id, oi.order_number, oi.product_id, oi.product_db_id,
		       p.product_title AS product_title,
		       oi.variant_id, oi.variant_size, oi.color_name, oi.color_hex_code,
		       oi.quantity, oi.discount, oi.total
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_db_id
		WHERE oi.order_number IN (?)
	`, numbers)
	if err != nil {
		return fmt.Errorf("failed to build items query: %w", err)
	}
	query = r.db.Rebind(query)

	var itemRows []orderItemRow
	if err := r.db.SelectContext(ctx, &itemRows, query, args...); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	for _, row := range itemRows {
		if order, ok := byNumber[row.OrderNumber]; ok {
			order.Items = append(order.Items, row.toDomain())
		}
	}
	return nil
}

// Delete removes an order and its items transactionally.
func (r *PostgresOrderRepository) Delete(ctx context.Context, orderNumber string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE order_number = $1`, orderNumber); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM orders WHERE order_number = $1`, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// UpdateStatus applies a status transition, touching only the fields the
// transition sets or clears.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderNumber string, update domain.StatusUpdate) error {
	query := `UPDATE orders SET status = $1, updated_at = $2`
	args := []interface{}{string(update.Status), time.Now()}

	if update.CancelReason != nil {
		args = append(args, *update.CancelReason)
		query += fmt.Sprintf(", cancel_reason = $%d", len(args))
	}
	if update.TrackingID != nil {
		args = append(args, *update.TrackingID)
		query += fmt.Sprintf(", tracking_id = $%d", len(args))
	}

	args = append(args, orderNumber)
	query += fmt.Sprintf(" WHERE order_number = $%d", len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
