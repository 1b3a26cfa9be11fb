package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/database"
)

const orderColumns = `o.id, o.user_id, o.first_name, o.last_name, o.guest_phone, o.shipping_address,
		o.total_amount, o.status, o.created_at, o.updated_at, u.username`

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{}
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.FirstName,
		&o.LastName,
		&o.GuestPhone,
		&o.ShippingAddress,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.Username,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// =====================================================
// CREATE ORDER
// =====================================================

func (r *postgresOrderRepository) CreateWithItems(ctx context.Context, order *model.Order) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (
				id, user_id, first_name, last_name, guest_phone,
				shipping_address, total_amount, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at
		`,
			order.ID,
			order.UserID,
			order.FirstName,
			order.LastName,
			order.GuestPhone,
			order.ShippingAddress,
			order.TotalAmount,
			order.Status,
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, item := range order.Items {
			batch.Queue(`
				INSERT INTO order_items (id, order_id, product_id, quantity, price_at_order, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, item.ID, order.ID, item.ProductID, item.Quantity, item.PriceAtOrder, item.Position)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}

		for _, item := range order.Items {
			tag, err := tx.Exec(ctx, `
				UPDATE products
				SET stock = stock - $1, updated_at = NOW()
				WHERE id = $2 AND stock >= $1
			`, item.Quantity, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: product %s", model.ErrInsufficientStock, item.ProductID)
			}
		}

		return nil
	})
}

// =====================================================
// READ
// =====================================================

func (r *postgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

const selectItemsQuery = `
	SELECT id, order_id, product_id, quantity, price_at_order, position
	FROM order_items
	WHERE order_id = $1
	ORDER BY position, id
`

func (r *postgresOrderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	rows, err := r.pool.Query(ctx, selectItemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceAtOrder, &it.Position); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// buildWhere renders the WHERE clause for filter and its arguments
func buildWhere(filter ListFilter) (string, []interface{}) {
	var w utils.Where

	if filter.UserID != nil {
		w.And("o.user_id = " + w.Arg(*filter.UserID))
	}
	if filter.Status != nil {
		w.And("o.status = " + w.Arg(*filter.Status))
	}

	return w.Clause(), w.Args()
}

func (r *postgresOrderRepository) List(ctx context.Context, filter ListFilter) ([]*model.Order, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders o "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		%s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// =====================================================
// UPDATE STATUS
// =====================================================

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.Order, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}
