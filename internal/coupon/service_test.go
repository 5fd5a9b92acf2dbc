package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int32) ([]*Coupon, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Coupon), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, c *Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(repo Repository, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func int64Ptr(v int64) *int64       { return &v }
func floatPtr(v float64) *float64   { return &v }

// --- Validate ---

func TestService_Validate(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	t.Run("UnknownCode", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		res, err := svc.Validate(ctx, "nope", 500)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, MsgInvalidCode, res.Message)
	})

	t.Run("CodeNormalizedToUpper", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "FIVEOFF").Return(&Coupon{
			Code: "FIVEOFF", Active: true,
			DiscountType: DiscountPercentage, DiscountValue: 5,
		}, nil)

		res, err := svc.Validate(ctx, "fiveOff", 400)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		repo.AssertExpectations(t)
	})

	t.Run("InactiveLooksLikeUnknown", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "PAUSED").Return(&Coupon{
			Code: "PAUSED", Active: false,
			DiscountType: DiscountFixed, DiscountValue: 100,
		}, nil)

		res, err := svc.Validate(ctx, "PAUSED", 500)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, MsgInvalidCode, res.Message)
	})

	t.Run("ExpiryBoundary", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)

		// validUntil == now is still valid; one second earlier is not.
		repo.On("GetByCode", ctx, "EDGE").Return(&Coupon{
			Code: "EDGE", Active: true,
			ValidUntil:   int64Ptr(now.Unix()),
			DiscountType: DiscountFixed, DiscountValue: 10,
		}, nil).Once()

		res, err := svc.Validate(ctx, "EDGE", 500)
		require.NoError(t, err)
		assert.True(t, res.Valid)

		repo.On("GetByCode", ctx, "EDGE").Return(&Coupon{
			Code: "EDGE", Active: true,
			ValidUntil:   int64Ptr(now.Unix() - 1),
			DiscountType: DiscountFixed, DiscountValue: 10,
		}, nil).Once()

		res, err = svc.Validate(ctx, "EDGE", 500)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, MsgExpired, res.Message)
	})

	t.Run("NilExpiryNeverExpires", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "FOREVER").Return(&Coupon{
			Code: "FOREVER", Active: true,
			DiscountType: DiscountFixed, DiscountValue: 25,
		}, nil)

		res, err := svc.Validate(ctx, "FOREVER", 100)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("BelowMinimum", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "BIGCART").Return(&Coupon{
			Code: "BIGCART", Active: true,
			MinOrderAmount: floatPtr(1000),
			DiscountType:   DiscountPercentage, DiscountValue: 10,
		}, nil)

		res, err := svc.Validate(ctx, "BIGCART", 999.99)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, MsgBelowMinimum, res.Message)
	})

	t.Run("MinimumMetExactly", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "BIGCART").Return(&Coupon{
			Code: "BIGCART", Active: true,
			MinOrderAmount: floatPtr(1000),
			DiscountType:   DiscountPercentage, DiscountValue: 10,
		}, nil)

		res, err := svc.Validate(ctx, "BIGCART", 1000)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, 100.0, res.DiscountAmount)
	})

	t.Run("DataLayerFailurePropagates", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, now)
		repo.On("GetByCode", ctx, "ANY").Return(nil, errors.New("db down"))

		_, err := svc.Validate(ctx, "ANY", 100)
		assert.Error(t, err)
	})
}

// --- DiscountAmount ---

func TestDiscountAmount(t *testing.T) {
	t.Run("FixedUncappedBySubtotal", func(t *testing.T) {
		c := &Coupon{DiscountType: DiscountFixed, DiscountValue: 1000}
		assert.Equal(t, 1000.0, DiscountAmount(c, 100))
	})

	t.Run("PercentageCapped", func(t *testing.T) {
		c := &Coupon{
			DiscountType: DiscountPercentage, DiscountValue: 20,
			MaxDiscountAmount: floatPtr(50),
		}
		assert.Equal(t, 50.0, DiscountAmount(c, 500))
	})

	t.Run("PercentageUncappedWhenBelowCeiling", func(t *testing.T) {
		c := &Coupon{
			DiscountType: DiscountPercentage, DiscountValue: 20,
			MaxDiscountAmount: floatPtr(50),
		}
		assert.Equal(t, 40.0, DiscountAmount(c, 200))
	})

	t.Run("PercentageNoCap", func(t *testing.T) {
		c := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 5}
		assert.Equal(t, 20.0, DiscountAmount(c, 400))
	})

	t.Run("FreeShippingContributesZero", func(t *testing.T) {
		c := &Coupon{DiscountType: DiscountFreeShipping, DiscountValue: 1}
		assert.Equal(t, 0.0, DiscountAmount(c, 5000))
	})

	t.Run("RoundsHalfUpOnCents", func(t *testing.T) {
		// 333.33 * 7.5% = 24.99975 -> 25.00
		c := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 7.5}
		assert.Equal(t, 25.0, DiscountAmount(c, 333.33))
	})
}

// --- CRUD ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		c := &Coupon{Code: "NEW10", DiscountType: DiscountFixed, DiscountValue: 10}
		repo.On("Create", ctx, c).Return(nil)

		assert.NoError(t, svc.Create(ctx, c))
		repo.AssertExpectations(t)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		err := svc.Create(ctx, &Coupon{DiscountType: DiscountFixed})
		assert.Error(t, err)
	})

	t.Run("NegativeValue", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		err := svc.Create(ctx, &Coupon{Code: "X", DiscountType: DiscountFixed, DiscountValue: -5})
		assert.Error(t, err)
	})

	t.Run("UnknownDiscountType", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		err := svc.Create(ctx, &Coupon{Code: "X", DiscountType: "bogus"})
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresID", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		err := svc.Update(ctx, &Coupon{Code: "X", DiscountType: DiscountFixed})
		assert.Error(t, err)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		c := &Coupon{ID: "c-1", Code: "X", DiscountType: DiscountFixed}
		repo.On("Update", ctx, c).Return(nil)
		assert.NoError(t, svc.Update(ctx, c))
	})
}

func TestService_List_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("List", ctx, int32(20), int32(0)).Return([]*Coupon{}, nil).Once()
	_, err := svc.List(ctx, 0, 0)
	assert.NoError(t, err)

	repo.On("List", ctx, int32(100), int32(0)).Return([]*Coupon{}, nil).Once()
	_, err = svc.List(ctx, 500, 0)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
