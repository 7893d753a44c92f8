package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

const (
	msgInventoryLoad    = "Failed to load inventory records."
	msgProductSave      = "Unable to save product changes. Please try again."
	msgProductDelete    = "Unable to delete product. Please try again."
	msgAdminSignInToAct = "You must be signed in as an administrator to manage items."
)

// InventoryServiceOptions groups dependencies for InventoryService.
type InventoryServiceOptions struct {
	Products ports.ProductGateway
	Logger   *slog.Logger
}

// InventoryService lists the catalogue and applies admin-only mutations.
type InventoryService struct {
	products ports.ProductGateway
	logger   *slog.Logger
}

// NewInventoryService constructs a new InventoryService.
func NewInventoryService(opts InventoryServiceOptions) *InventoryService {
	if opts.Products == nil {
		panic("ProductGateway is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{products: opts.Products, logger: logger.With("component", "inventory_service")}
}

// List returns every product. It needs no session.
func (s *InventoryService) List(ctx context.Context) ([]inventory.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, backend.Translate(err, msgInventoryLoad)
	}
	return products, nil
}

// Create validates form and stores a new product.
func (s *InventoryService) Create(ctx context.Context, sess *domainauth.Session, form inventory.ProductForm) (inventory.Product, error) {
	token, in, err := s.prepare(sess, form)
	if err != nil {
		return inventory.Product{}, err
	}
	p, err := s.products.CreateProduct(ctx, token, in)
	if err != nil {
		return inventory.Product{}, backend.Translate(err, msgProductSave)
	}
	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "user_id", sess.UserID)
	return p, nil
}

// Update validates form and replaces product id.
func (s *InventoryService) Update(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	form inventory.ProductForm,
) (inventory.Product, error) {
	token, in, err := s.prepare(sess, form)
	if err != nil {
		return inventory.Product{}, err
	}
	p, err := s.products.UpdateProduct(ctx, token, id, in)
	if err != nil {
		return inventory.Product{}, backend.Translate(err, msgProductSave)
	}
	s.logger.InfoContext(ctx, "product updated", "product_id", id, "user_id", sess.UserID)
	return p, nil
}

// Delete removes product id.
func (s *InventoryService) Delete(ctx context.Context, sess *domainauth.Session, id string) error {
	token, err := s.authorize(sess)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, token, id); err != nil {
		return backend.Translate(err, msgProductDelete)
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id, "user_id", sess.UserID)
	return nil
}

func (s *InventoryService) authorize(sess *domainauth.Session) (string, error) {
	if !CanManageInventory(domainauth.Decide(sess)) {
		return "", forbidden(InventoryRestricted)
	}
	return bearer(sess, msgAdminSignInToAct)
}

func (s *InventoryService) prepare(
	sess *domainauth.Session,
	form inventory.ProductForm,
) (string, inventory.ProductInput, error) {
	token, err := s.authorize(sess)
	if err != nil {
		return "", inventory.ProductInput{}, err
	}
	in, err := form.Validate()
	if err != nil {
		return "", inventory.ProductInput{}, validationError(err)
	}
	return token, in, nil
}

// validationError lifts a domain form error into the application taxonomy.
func validationError(err error) error {
	var ve *inventory.ValidationError
	if errors.As(err, &ve) {
		return apperrors.ValidationField(ve.Field, ve.Message)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
}
