package coupon

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"charmforge-be/internal/logger"

	"go.uber.org/zap"
)

// Service validates coupon codes at checkout and backs the admin console
// CRUD. Validation never mutates the coupon.
type Service interface {
	// Validate checks a code against a subtotal. The returned error is
	// non-nil only for data-layer failures; business rejections come back
	// as a ValidationResult with Valid=false.
	Validate(ctx context.Context, code string, subtotal float64) (*ValidationResult, error)
	List(ctx context.Context, limit, offset int32) ([]*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Validate(ctx context.Context, code string, subtotal float64) (*ValidationResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Validate"),
		zap.String("code", strings.ToUpper(code)),
		zap.Float64("subtotal", subtotal),
	)

	c, err := s.repo.GetByCode(ctx, strings.ToUpper(code))
	if err != nil {
		log.Error("failed to look up coupon", zap.Error(err))
		return nil, err
	}

	if c == nil || !c.Active {
		return &ValidationResult{Valid: false, Message: MsgInvalidCode}, nil
	}

	if c.ValidUntil != nil && *c.ValidUntil < s.now().Unix() {
		return &ValidationResult{Valid: false, Message: MsgExpired}, nil
	}

	if c.MinOrderAmount != nil && subtotal < *c.MinOrderAmount {
		return &ValidationResult{Valid: false, Message: MsgBelowMinimum}, nil
	}

	discount := DiscountAmount(c, subtotal)
	log.Info("coupon valid", zap.Float64("discount", discount))

	return &ValidationResult{
		Valid:          true,
		DiscountAmount: discount,
		Coupon:         c,
	}, nil
}

// DiscountAmount computes the monetary discount a coupon grants on a
// subtotal, rounded half-up at the cent boundary.
//
// A fixed discount is deliberately NOT capped by the subtotal; the
// original storefront let a generous flat coupon push the pre-shipping
// total negative and downstream code tolerates it.
func DiscountAmount(c *Coupon, subtotal float64) float64 {
	var amount float64

	switch c.DiscountType {
	case DiscountFixed:
		amount = math.Max(c.DiscountValue, 0)
	case DiscountPercentage:
		amount = subtotal * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && amount > *c.MaxDiscountAmount {
			amount = *c.MaxDiscountAmount
		}
	case DiscountFreeShipping:
		// Realized through the shipping calculator, not as money off.
		amount = 0
	}

	return math.Round(amount*100) / 100
}

func (s *service) List(ctx context.Context, limit, offset int32) ([]*Coupon, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Create(ctx context.Context, c *Coupon) error {
	if err := validateInput(c); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("code", c.Code),
	)

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create coupon", zap.Error(err))
		return err
	}

	log.Info("coupon created", zap.String("coupon_id", c.ID))
	return nil
}

func (s *service) Update(ctx context.Context, c *Coupon) error {
	if c.ID == "" {
		return errors.New("coupon id is required")
	}
	if err := validateInput(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("coupon id is required")
	}
	return s.repo.Delete(ctx, id)
}

func validateInput(c *Coupon) error {
	if strings.TrimSpace(c.Code) == "" {
		return errors.New("code cannot be empty")
	}
	if c.DiscountValue < 0 {
		return errors.New("discount value cannot be negative")
	}
	switch c.DiscountType {
	case DiscountFixed, DiscountPercentage, DiscountFreeShipping:
	default:
		return errors.New("unknown discount type: " + string(c.DiscountType))
	}
	return nil
}
