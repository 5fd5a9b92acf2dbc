package catalog

import (
	"context"
	"errors"
	"strings"

	"charmforge-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the product catalog.
type Service interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, opts ListOptions) ([]*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

type service struct {
	repo Repository
	ref  *Reference
}

func NewService(repo Repository, ref *Reference) Service {
	return &service{repo: repo, ref: ref}
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", id),
	)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	log.Info("list products success", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, p *Product) error {
	if err := s.validate(p); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", p.Name),
	)

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return nil
}

func (s *service) UpdateProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		return errors.New("product id is required")
	}
	if err := s.validate(p); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", p.ID),
	)

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) SetAvailability(ctx context.Context, id string, available bool) error {
	if id == "" {
		return errors.New("product id is required")
	}
	return s.repo.SetAvailability(ctx, id, available)
}

func (s *service) validate(p *Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if p.BasePrice < 0 {
		return errors.New("base price cannot be negative")
	}
	if _, ok := s.ref.Category(p.CategoryID); !ok {
		return ErrUnknownCategory
	}
	for _, ref := range p.Customizations {
		if _, ok := s.ref.Definition(ref.DefinitionID); !ok {
			return errors.New("unknown customization definition: " + ref.DefinitionID)
		}
	}
	return nil
}
