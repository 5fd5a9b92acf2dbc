package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"charmforge-be/internal/payment"
)

type Repository interface {
	// Create persists the order and its lines in one transaction.
	Create(ctx context.Context, o *Order) error
	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	MarkPaid(ctx context.Context, id, paymentID string, confirmedAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, customer_name, customer_email, customer_phone, address, city, state,
		postal_code, subtotal, discount, shipping, tax, total, coupon_code,
		payment_method, payment_status, razorpay_order_id, razorpay_payment_id,
		status, notes, created_at, confirmed_at`

func (r *repository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders
			(id, customer_name, customer_email, customer_phone, address, city, state,
			 postal_code, subtotal, discount, shipping, tax, total, coupon_code,
			 payment_method, payment_status, razorpay_order_id, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err = tx.ExecContext(ctx, orderQuery,
		o.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Address, o.Customer.City, o.Customer.State, o.Customer.PostalCode,
		o.Pricing.Subtotal, o.Pricing.Discount, o.Pricing.Shipping, o.Pricing.Tax,
		o.Pricing.Total, o.Pricing.CouponCode,
		string(o.Payment.Method), string(o.Payment.Status), o.Payment.RazorpayOrderID,
		string(o.Status), o.Notes, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines
			(order_id, product_id, name, category_id, unit_price, quantity,
			 line_total, customizations, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, line := range o.Lines {
		custJSON, err := json.Marshal(line.Customizations)
		if err != nil {
			return fmt.Errorf("failed to encode line customizations: %w", err)
		}

		_, err = tx.ExecContext(ctx, lineQuery,
			o.ID, line.ProductID, line.Name, line.CategoryID,
			line.UnitPrice, line.Quantity, line.LineTotal, custJSON, line.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	return r.getOne(ctx, query, id)
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE razorpay_order_id = $1`, orderColumns)
	return r.getOne(ctx, query, gatewayOrderID)
}

func (r *repository) getOne(ctx context.Context, query string, arg interface{}) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	lines, err := r.getLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *repository) getLines(ctx context.Context, orderID string) ([]OrderLine, error) {
	query := `
		SELECT product_id, name, category_id, unit_price, quantity,
		       line_total, customizations, image_url
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	lines := []OrderLine{}
	for rows.Next() {
		var (
			line     OrderLine
			custJSON []byte
			imageURL sql.NullString
		)
		err := rows.Scan(&line.ProductID, &line.Name, &line.CategoryID,
			&line.UnitPrice, &line.Quantity, &line.LineTotal, &custJSON, &imageURL)
		if err != nil {
			return nil, err
		}
		if len(custJSON) > 0 {
			if err := json.Unmarshal(custJSON, &line.Customizations); err != nil {
				return nil, fmt.Errorf("failed to decode line customizations: %w", err)
			}
		}
		if imageURL.Valid {
			line.ImageURL = &imageURL.String
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE 1=1`, orderColumns)
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}

	offset := (filter.Page - 1) * filter.Limit
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) MarkPaid(ctx context.Context, id, paymentID string, confirmedAt time.Time) error {
	query := `
		UPDATE orders
		SET payment_status = 'PAID', razorpay_payment_id = $1,
		    status = 'CONFIRMED', confirmed_at = $2
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, paymentID, confirmedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) MarkFailed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = 'FAILED' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark order failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o           Order
		couponCode  sql.NullString
		gwOrderID   sql.NullString
		gwPaymentID sql.NullString
		notes       sql.NullString
		confirmedAt sql.NullTime
		method      string
		payStatus   string
		status      string
	)

	err := row.Scan(&o.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Customer.Address, &o.Customer.City, &o.Customer.State, &o.Customer.PostalCode,
		&o.Pricing.Subtotal, &o.Pricing.Discount, &o.Pricing.Shipping, &o.Pricing.Tax,
		&o.Pricing.Total, &couponCode, &method, &payStatus, &gwOrderID, &gwPaymentID,
		&status, &notes, &o.CreatedAt, &confirmedAt)
	if err != nil {
		return nil, err
	}

	o.Payment.Method = payment.Method(method)
	o.Payment.Status = payment.Status(payStatus)
	o.Status = Status(status)

	if couponCode.Valid {
		o.Pricing.CouponCode = &couponCode.String
	}
	if gwOrderID.Valid {
		o.Payment.RazorpayOrderID = &gwOrderID.String
	}
	if gwPaymentID.Valid {
		o.Payment.RazorpayPaymentID = &gwPaymentID.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	if confirmedAt.Valid {
		o.ConfirmedAt = &confirmedAt.Time
	}
	return &o, nil
}
