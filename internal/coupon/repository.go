package coupon

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	// GetByCode returns (nil, nil) when no coupon carries the code.
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, limit, offset int32) ([]*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `id, code, name, description, active, valid_until, min_order_amount,
		discount_type, discount_value, max_discount_amount, created_at`

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons WHERE code = $1`, couponColumns)

	c, err := scanCoupon(r.db.QueryRowContext(ctx, query, strings.ToUpper(code)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]*Coupon, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		couponColumns,
	)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []*Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *repository) Create(ctx context.Context, c *Coupon) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Code = strings.ToUpper(c.Code)

	query := `
		INSERT INTO coupons
			(id, code, name, description, active, valid_until, min_order_amount,
			 discount_type, discount_value, max_discount_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Code, c.Name, c.Description, c.Active, c.ValidUntil,
		c.MinOrderAmount, c.DiscountType, c.DiscountValue, c.MaxDiscountAmount,
	).Scan(&c.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrDuplicateCode
	}
	return err
}

func (r *repository) Update(ctx context.Context, c *Coupon) error {
	c.Code = strings.ToUpper(c.Code)

	query := `
		UPDATE coupons
		SET code = $1, name = $2, description = $3, active = $4, valid_until = $5,
		    min_order_amount = $6, discount_type = $7, discount_value = $8,
		    max_discount_amount = $9
		WHERE id = $10
	`

	res, err := r.db.ExecContext(ctx, query,
		c.Code, c.Name, c.Description, c.Active, c.ValidUntil,
		c.MinOrderAmount, c.DiscountType, c.DiscountValue, c.MaxDiscountAmount, c.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to update coupon %s: %w", c.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCoupon(row rowScanner) (*Coupon, error) {
	var (
		c           Coupon
		validUntil  sql.NullInt64
		minOrder    sql.NullFloat64
		maxDiscount sql.NullFloat64
	)

	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Active,
		&validUntil, &minOrder, &c.DiscountType, &c.DiscountValue,
		&maxDiscount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	if validUntil.Valid {
		c.ValidUntil = &validUntil.Int64
	}
	if minOrder.Valid {
		c.MinOrderAmount = &minOrder.Float64
	}
	if maxDiscount.Valid {
		c.MaxDiscountAmount = &maxDiscount.Float64
	}
	return &c, nil
}
