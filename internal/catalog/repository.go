package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type ListOptions struct {
	CategoryID      string
	IncludeDisabled bool
	Limit           int32
	Offset          int32
}

type Repository interface {
	// GetByID returns (nil, nil) when the product does not exist.
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, category_id, base_price, image_url, available, customizations, created_at`

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE 1=1`, productColumns)
	args := []interface{}{}
	argPos := 1

	if opts.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", argPos)
		args = append(args, opts.CategoryID)
		argPos++
	}
	if !opts.IncludeDisabled {
		query += " AND available = TRUE"
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, opts.Limit)
		argPos++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	custJSON, err := json.Marshal(p.Customizations)
	if err != nil {
		return fmt.Errorf("failed to encode customizations: %w", err)
	}

	query := `
		INSERT INTO products (id, name, category_id, base_price, image_url, available, customizations)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	return r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.CategoryID, p.BasePrice, p.ImageURL, p.Available, custJSON,
	).Scan(&p.CreatedAt)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	custJSON, err := json.Marshal(p.Customizations)
	if err != nil {
		return fmt.Errorf("failed to encode customizations: %w", err)
	}

	query := `
		UPDATE products
		SET name = $1, category_id = $2, base_price = $3, image_url = $4,
		    available = $5, customizations = $6
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.CategoryID, p.BasePrice, p.ImageURL, p.Available, custJSON, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return fmt.Errorf("failed to set availability for %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p        Product
		imageURL sql.NullString
		custJSON []byte
	)

	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.BasePrice,
		&imageURL, &p.Available, &custJSON, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if len(custJSON) > 0 {
		if err := json.Unmarshal(custJSON, &p.Customizations); err != nil {
			return nil, fmt.Errorf("failed to decode customizations: %w", err)
		}
	}
	return &p, nil
}
