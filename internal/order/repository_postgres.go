package order

import (
	"database/sql"
	"encoding/json"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `order_id, gateway_order_id, user_id, customer_name, customer_email, date, total,
		coupon, coupon_value, status, payment_status, payment_method, gateway_payment_id,
		gateway_signature, paid_at, map_link, shipping_address, items, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var ord Order
	var addrJSON, itemsJSON []byte
	var coupon sql.NullString
	var paidAt sql.NullTime
	err := row.Scan(&ord.ID, &ord.GatewayOrderID, &ord.UserID, &ord.CustomerName, &ord.CustomerEmail,
		&ord.Date, &ord.Total, &coupon, &ord.CouponValue, &ord.Status, &ord.PaymentStatus,
		&ord.PaymentMethod, &ord.GatewayPaymentID, &ord.GatewaySignature, &paidAt, &ord.MapLink,
		&addrJSON, &itemsJSON, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if coupon.Valid {
		ord.Coupon = coupon.String
	}
	if paidAt.Valid {
		t := paidAt.Time
		ord.PaidAt = &t
	}
	json.Unmarshal(addrJSON, &ord.ShippingAddress)
	json.Unmarshal(itemsJSON, &ord.Items)
	return ord, nil
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	addrJSON, err := json.Marshal(ord.ShippingAddress)
	if err != nil {
		return Order{}, err
	}
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	var coupon any
	if ord.Coupon != "" {
		coupon = ord.Coupon
	}

	err = r.db.QueryRow(`INSERT INTO orders (gateway_order_id, user_id, customer_name, customer_email, date, total,
			coupon, coupon_value, status, payment_status, payment_method, map_link, shipping_address, items,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING order_id`,
		ord.GatewayOrderID, ord.UserID, ord.CustomerName, ord.CustomerEmail, ord.Date, ord.Total,
		coupon, ord.CouponValue, ord.Status, ord.PaymentStatus, ord.PaymentMethod, ord.MapLink,
		addrJSON, itemsJSON, ord.CreatedAt, ord.UpdatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.list(`SELECT ` + orderColumns + ` FROM orders ORDER BY order_id DESC`)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkPaid(gatewayOrderID, paymentID, signature string, paidAt time.Time) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`UPDATE orders
		SET status=$2, payment_status=$3, gateway_payment_id=$4, gateway_signature=$5, paid_at=$6, updated_at=$7
		WHERE gateway_order_id=$1
		RETURNING `+orderColumns,
		gatewayOrderID, StatusProcessing, PaymentPaid, paymentID, signature, paidAt,
		paidAt.UTC().Format(time.RFC3339)))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) UpdateStatus(gatewayOrderID string, status Status) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`UPDATE orders SET status=$2, updated_at=$3
		WHERE gateway_order_id=$1
		RETURNING `+orderColumns,
		gatewayOrderID, status, time.Now().UTC().Format(time.RFC3339)))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) Cancel(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`UPDATE orders SET status=$2, payment_status=$3, updated_at=$4
		WHERE order_id=$1
		RETURNING `+orderColumns,
		id, StatusCancelled, PaymentFailed, time.Now().UTC().Format(time.RFC3339)))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}
