package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(t *testing.T, products ...*Product) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "name", "category_id", "base_price", "image_url", "available", "customizations", "created_at",
	})
	for _, p := range products {
		custJSON, err := json.Marshal(p.Customizations)
		require.NoError(t, err)

		var imageURL interface{}
		if p.ImageURL != nil {
			imageURL = *p.ImageURL
		}
		rows.AddRow(p.ID, p.Name, p.CategoryID, p.BasePrice, imageURL, p.Available, custJSON, p.CreatedAt)
	}
	return rows
}

func sampleProduct() *Product {
	priceAdd := 20.0
	return &Product{
		ID:         "prod-1",
		Name:       "Bear Keychain",
		CategoryID: "keychains",
		BasePrice:  150,
		Available:  true,
		Customizations: []CustomizationRef{
			{DefinitionID: "keychain-charm", PriceAdd: &priceAdd},
		},
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRepositoryGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := sampleProduct()
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
			WithArgs("prod-1").
			WillReturnRows(productRows(t, want))

		got, err := NewRepository(db).GetByID(context.Background(), "prod-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Bear Keychain", got.Name)
		require.Len(t, got.Customizations, 1)
		assert.Equal(t, "keychain-charm", got.Customizations[0].DefinitionID)
		require.NotNil(t, got.Customizations[0].PriceAdd)
		assert.Equal(t, 20.0, *got.Customizations[0].PriceAdd)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(productRows(t))

		got, err := NewRepository(db).GetByID(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM products`).
			WillReturnError(errors.New("connection refused"))

		_, err = NewRepository(db).GetByID(context.Background(), "prod-1")
		assert.Error(t, err)
	})
}

func TestRepositoryList(t *testing.T) {
	t.Run("FiltersByCategoryAndAvailability", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM products WHERE 1=1 AND category_id = \$1 AND available = TRUE ORDER BY created_at DESC LIMIT \$2`).
			WithArgs("keychains", int32(20)).
			WillReturnRows(productRows(t, sampleProduct()))

		got, err := NewRepository(db).List(context.Background(), ListOptions{
			CategoryID: "keychains",
			Limit:      20,
		})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IncludeDisabledSkipsAvailabilityFilter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM products WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(10), int32(10)).
			WillReturnRows(productRows(t))

		got, err := NewRepository(db).List(context.Background(), ListOptions{
			IncludeDisabled: true,
			Limit:           10,
			Offset:          10,
		})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := sampleProduct()
	p.ID = ""
	created := time.Now()

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(sqlmock.AnyArg(), p.Name, p.CategoryID, p.BasePrice, p.ImageURL, p.Available, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	err = NewRepository(db).Create(context.Background(), p)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID, "create should assign an id")
	assert.Equal(t, created, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		p := sampleProduct()
		mock.ExpectExec(`UPDATE products`).
			WithArgs(p.Name, p.CategoryID, p.BasePrice, p.ImageURL, p.Available, sqlmock.AnyArg(), p.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewRepository(db).Update(context.Background(), p))
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE products`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewRepository(db).Update(context.Background(), sampleProduct())
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepositorySetAvailability(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE products SET available = \$1 WHERE id = \$2`).
			WithArgs(false, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewRepository(db).SetAvailability(context.Background(), "prod-1", false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE products SET available`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewRepository(db).SetAvailability(context.Background(), "ghost", true)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
