package postgres

import (
	"context"
	"fmt"
	"strings"

	"tabreed-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO orders (
			id, user_id, customer_name, customer_phone, customer_email,
			customer_city, customer_address, customer_note,
			status, subtotal, shipping_fee, total_amount, payment_method,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())`,
		order.ID, order.UserID, order.Customer.Name, order.Customer.Phone, order.Customer.Email,
		order.Customer.City, order.Customer.Address, order.Customer.Note,
		order.Status, order.Subtotal, order.ShippingFee, order.TotalAmount, order.PaymentMethod,
	)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = order.ID
		_, err := q(ctx, r.db).Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, name, name_ar, brand, model, image,
				capacity_btu, unit_type, quantity, price
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			item.ID, item.OrderID, item.ProductID, item.Name, item.NameAr, item.Brand, item.Model, item.Image,
			item.CapacityBTU, item.UnitType, item.Quantity, item.Price,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

const orderColumns = `
	id, user_id, customer_name, customer_phone, customer_email,
	customer_city, customer_address, customer_note,
	status, subtotal, shipping_fee, total_amount, payment_method,
	created_at, updated_at`

func (r *orderRepository) scanOrders(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := q(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.UserID, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Email,
			&o.Customer.City, &o.Customer.Address, &o.Customer.Note,
			&o.Status, &o.Subtotal, &o.ShippingFee, &o.TotalAmount, &o.PaymentMethod,
			&o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := q(ctx, r.db).Query(ctx, `
		SELECT id, order_id, product_id, name, name_ar, brand, model, image,
			capacity_btu, unit_type, quantity, price
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.NameAr, &it.Brand, &it.Model, &it.Image,
			&it.CapacityBTU, &it.UnitType, &it.Quantity, &it.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := r.scanOrders(ctx,
		fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns), id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("order not found")
	}
	return &orders[0], nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.scanOrders(ctx,
		fmt.Sprintf("SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC", orderColumns), userID)
}

func (r *orderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, fmt.Sprintf(
			"(customer_name ILIKE %s OR customer_phone ILIKE %s OR id::text ILIKE %s)",
			arg(pattern), arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := q(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	sql := fmt.Sprintf("SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT %s OFFSET %s",
		orderColumns, where, arg(limit), arg(offset))
	orders, err := r.scanOrders(ctx, sql, args...)
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := q(ctx, r.db).Exec(ctx,
		"UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

func (r *orderRepository) CreateOrderHistory(ctx context.Context, h *domain.OrderHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO order_history (id, order_id, previous_status, new_status, reason, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())`,
		h.ID, h.OrderID, h.PreviousStatus, h.NewStatus, h.Reason, h.CreatedBy)
	return err
}

func (r *orderRepository) GetOrderHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	rows, err := q(ctx, r.db).Query(ctx, `
		SELECT id, order_id, previous_status, new_status, reason, created_by, created_at
		FROM order_history WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.OrderHistory
	for rows.Next() {
		var h domain.OrderHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.PreviousStatus, &h.NewStatus, &h.Reason, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
