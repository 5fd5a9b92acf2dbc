package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"charmforge-be/internal/catalog"
	"charmforge-be/internal/coupon"
	"charmforge-be/internal/logger"
	"charmforge-be/internal/payment"
	"charmforge-be/internal/pricing"
	"charmforge-be/internal/shipping"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciled is the output of server-side pricing reconciliation: the
// frozen lines and the authoritative pricing block that overwrite
// whatever the client sent.
type Reconciled struct {
	Lines   []OrderLine
	Pricing PricingDetails
}

type Service interface {
	// Create reconciles pricing, opens a gateway order for online
	// payment, and persists the order. Nothing is written if any of
	// those steps fail.
	Create(ctx context.Context, input CreateInput) (*Order, error)
	// Reconcile re-derives order pricing from trusted product records,
	// ignoring every client-submitted price figure.
	Reconcile(ctx context.Context, input CreateInput) (*Reconciled, error)
	GetDetail(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID string, amountPaid float64) error
	MarkFailed(ctx context.Context, gatewayOrderID string) error
}

type service struct {
	repo     Repository
	products catalog.Repository
	coupons  coupon.Service
	engine   *pricing.Engine
	shipping shipping.Calculator
	gateway  payment.Gateway
	notifier Notifier
	ref      *catalog.Reference
	now      func() time.Time
}

func NewService(
	repo Repository,
	products catalog.Repository,
	coupons coupon.Service,
	engine *pricing.Engine,
	calc shipping.Calculator,
	gateway payment.Gateway,
	notifier Notifier,
	ref *catalog.Reference,
) Service {
	return &service{
		repo:     repo,
		products: products,
		coupons:  coupons,
		engine:   engine,
		shipping: calc,
		gateway:  gateway,
		notifier: notifier,
		ref:      ref,
		now:      time.Now,
	}
}

func (s *service) Reconcile(ctx context.Context, input CreateInput) (*Reconciled, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Reconcile"),
		zap.Int("line_count", len(input.Lines)),
	)

	if len(input.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	lines := make([]OrderLine, 0, len(input.Lines))
	subtotal := 0.0

	for i, in := range input.Lines {
		logLine := log.With(
			zap.Int("index", i),
			zap.String("product_id", in.ProductID),
			zap.Int("quantity", in.Quantity),
		)

		if in.Quantity <= 0 {
			logLine.Warn("invalid quantity")
			return nil, errors.New("quantity must be greater than zero")
		}

		p, err := s.products.GetByID(ctx, in.ProductID)
		if err != nil {
			logLine.Error("failed to fetch product for pricing", zap.Error(err))
			return nil, fmt.Errorf("failed to fetch product %s: %w", in.ProductID, err)
		}
		if p == nil {
			// Tolerant degradation: the line vanishes rather than the
			// whole order failing.
			logLine.Warn("product not found, skipping line")
			continue
		}

		overrides := s.ref.EffectiveDefinitions(p.Customizations)
		unitPrice := s.engine.UnitPriceWith(s.effectiveBasePrice(p), in.Customizations, overrides)
		lineTotal := unitPrice * float64(in.Quantity)
		subtotal += lineTotal

		logLine.Debug("line priced",
			zap.String("product_name", p.Name),
			zap.Float64("unit_price", unitPrice),
			zap.Float64("line_total", lineTotal),
		)

		lines = append(lines, OrderLine{
			ProductID:      p.ID,
			Name:           p.Name,
			CategoryID:     p.CategoryID,
			UnitPrice:      unitPrice,
			Quantity:       in.Quantity,
			LineTotal:      lineTotal,
			Customizations: in.Customizations,
			ImageURL:       p.ImageURL,
		})
	}

	shippingCost := s.shipping.Cost(subtotal, nil)
	discount := 0.0
	var appliedCode *string

	if input.CouponCode != nil && strings.TrimSpace(*input.CouponCode) != "" {
		res, err := s.coupons.Validate(ctx, *input.CouponCode, subtotal)
		if err != nil {
			log.Error("coupon lookup failed", zap.Error(err))
			return nil, err
		}

		if res.Valid {
			discount = res.DiscountAmount
			shippingCost = s.shipping.Cost(subtotal, res.Coupon)
			appliedCode = &res.Coupon.Code
		} else {
			// Checkout already surfaced the rejection; here the coupon
			// effect is dropped without failing the order.
			log.Warn("coupon rejected during reconciliation",
				zap.String("code", *input.CouponCode),
				zap.String("reason", res.Message),
			)
		}
	}

	pricingDetails := PricingDetails{
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shippingCost,
		Tax:        0,
		Total:      subtotal - discount + shippingCost,
		CouponCode: appliedCode,
	}

	log.Info("pricing reconciled",
		zap.Float64("subtotal", pricingDetails.Subtotal),
		zap.Float64("discount", pricingDetails.Discount),
		zap.Float64("shipping", pricingDetails.Shipping),
		zap.Float64("total", pricingDetails.Total),
	)

	return &Reconciled{Lines: lines, Pricing: pricingDetails}, nil
}

// effectiveBasePrice merges category defaults under the product record;
// product fields win.
func (s *service) effectiveBasePrice(p *catalog.Product) float64 {
	if p.BasePrice != 0 {
		return p.BasePrice
	}
	if cat, ok := s.ref.Category(p.CategoryID); ok {
		return cat.BasePrice
	}
	return 0
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("payment_method", string(input.PaymentMethod)),
	)

	if input.PaymentMethod != payment.MethodRazorpay && input.PaymentMethod != payment.MethodCOD {
		return nil, fmt.Errorf("unsupported payment method: %s", input.PaymentMethod)
	}

	reconciled, err := s.Reconcile(ctx, input)
	if err != nil {
		log.Error("pricing reconciliation failed", zap.Error(err))
		return nil, err
	}

	o := &Order{
		ID:       uuid.New().String(),
		Customer: input.Customer,
		Lines:    reconciled.Lines,
		Pricing:  reconciled.Pricing,
		Payment: PaymentInfo{
			Method: input.PaymentMethod,
			Status: payment.StatusPending,
		},
		Status:    StatusPending,
		Notes:     input.Notes,
		CreatedAt: s.now(),
	}

	if input.PaymentMethod == payment.MethodRazorpay {
		gwOrder, err := s.gateway.CreateOrder(ctx, o.ID, o.Pricing.Total)
		if err != nil {
			// Nothing has been written yet, so aborting leaves no
			// half-created order behind.
			log.Error("failed to create gateway order", zap.Error(err))
			return nil, fmt.Errorf("failed to create payment order: %w", err)
		}
		o.Payment.RazorpayOrderID = &gwOrder.ID
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total", o.Pricing.Total),
	)

	if s.notifier != nil {
		go s.notifier.OrderPlaced(context.WithoutCancel(ctx), o)
	}

	return o, nil
}

func (s *service) GetDetail(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	} else if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	validStatuses := map[Status]bool{
		StatusConfirmed:  true,
		StatusProcessing: true,
		StatusShipped:    true,
		StatusDelivered:  true,
		StatusCancelled:  true,
	}

	if !validStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *service) MarkPaid(ctx context.Context, gatewayOrderID, paymentID string, amountPaid float64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MarkPaid"),
		zap.String("gateway_order_id", gatewayOrderID),
	)

	o, err := s.repo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	if o.Payment.Status == payment.StatusPaid {
		log.Info("order already marked as paid", zap.String("order_id", o.ID))
		return nil
	}

	// The gateway's signed event carries the captured amount; refuse to
	// confirm when it disagrees with what we priced the order at.
	if math.Abs(amountPaid-o.Pricing.Total) > 0.01 {
		log.Error("paid amount mismatch",
			zap.String("order_id", o.ID),
			zap.Float64("amount_paid", amountPaid),
			zap.Float64("order_total", o.Pricing.Total),
		)
		return ErrAmountMismatch
	}

	if err := s.repo.MarkPaid(ctx, o.ID, paymentID, s.now()); err != nil {
		return err
	}

	log.Info("order marked as paid", zap.String("order_id", o.ID))
	return nil
}

func (s *service) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MarkFailed"),
		zap.String("gateway_order_id", gatewayOrderID),
	)

	o, err := s.repo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	if o.Payment.Status == payment.StatusFailed {
		log.Info("order already marked as failed", zap.String("order_id", o.ID))
		return nil
	}

	if err := s.repo.MarkFailed(ctx, o.ID); err != nil {
		return err
	}

	log.Info("order marked as failed", zap.String("order_id", o.ID))
	return nil
}
