package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

const (
	msgRequestsLoad       = "Unable to load requests from the API."
	msgRequestProducts    = "Unable to load products for request creation."
	msgRequestSave        = "Unable to save request. Please try again."
	msgRequestDelete      = "Unable to delete request. Please try again."
	msgMissingAccessToken = "Missing access token. Please sign in again."
)

// RequestServiceOptions groups dependencies for RequestService.
type RequestServiceOptions struct {
	Requests ports.RequestGateway
	Products ports.ProductGateway
	Logger   *slog.Logger
}

// RequestService lists and mutates stock requests.
type RequestService struct {
	requests ports.RequestGateway
	products ports.ProductGateway
	logger   *slog.Logger
	now      func() time.Time
}

// NewRequestService constructs a new RequestService.
func NewRequestService(opts RequestServiceOptions) *RequestService {
	if opts.Requests == nil || opts.Products == nil {
		panic("RequestGateway and ProductGateway are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		requests: opts.Requests,
		products: opts.Products,
		logger:   logger.With("component", "request_service"),
		now:      time.Now,
	}
}

// List returns the requests visible to the session's user.
func (s *RequestService) List(ctx context.Context, sess *domainauth.Session) ([]inventory.Request, error) {
	token, err := bearer(sess, msgMissingAccessToken)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListRequests(ctx, token)
	if err != nil {
		return nil, backend.Translate(err, msgRequestsLoad)
	}
	return reqs, nil
}

// Products loads the catalogue used for the product picker and stock checks.
func (s *RequestService) Products(ctx context.Context) ([]inventory.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, backend.Translate(err, msgRequestProducts)
	}
	return products, nil
}

// BlankForm is a new stock-in request dated today.
func (s *RequestService) BlankForm() inventory.RequestForm {
	return inventory.RequestForm{
		TransactionType: inventory.StockIn,
		TransactionDate: s.now().UTC().Format(time.DateOnly),
	}
}

// EditForm pre-fills the form for req.
func (s *RequestService) EditForm(req inventory.Request) inventory.RequestForm {
	return inventory.FormFromRequest(req, s.now())
}

// Create validates form and submits a new request. Staff only.
func (s *RequestService) Create(ctx context.Context, sess *domainauth.Session, form inventory.RequestForm) (inventory.Request, error) {
	if !CanCreateRequest(domainauth.Decide(sess)) {
		return inventory.Request{}, forbidden(RequestsRestricted)
	}
	token, in, err := s.prepare(ctx, sess, form)
	if err != nil {
		return inventory.Request{}, err
	}
	req, err := s.requests.CreateRequest(ctx, token, in)
	if err != nil {
		return inventory.Request{}, backend.Translate(err, msgRequestSave)
	}
	s.logger.InfoContext(ctx, "stock request created",
		"request_id", req.ID, "type", in.TransactionType, "user_id", sess.UserID)
	return req, nil
}

// Update validates form and replaces request id.
func (s *RequestService) Update(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	form inventory.RequestForm,
) (inventory.Request, error) {
	if !CanEditRequest(domainauth.Decide(sess)) {
		return inventory.Request{}, forbidden(RequestsRestricted)
	}
	token, in, err := s.prepare(ctx, sess, form)
	if err != nil {
		return inventory.Request{}, err
	}
	req, err := s.requests.UpdateRequest(ctx, token, id, in)
	if err != nil {
		return inventory.Request{}, backend.Translate(err, msgRequestSave)
	}
	s.logger.InfoContext(ctx, "stock request updated", "request_id", id, "user_id", sess.UserID)
	return req, nil
}

// Delete removes request id.
func (s *RequestService) Delete(ctx context.Context, sess *domainauth.Session, id string) error {
	if !CanDeleteRequest(domainauth.Decide(sess)) {
		return forbidden(RequestsRestricted)
	}
	token, err := bearer(sess, msgMissingAccessToken)
	if err != nil {
		return err
	}
	if err := s.requests.DeleteRequest(ctx, token, id); err != nil {
		return backend.Translate(err, msgRequestDelete)
	}
	s.logger.InfoContext(ctx, "stock request deleted", "request_id", id, "user_id", sess.UserID)
	return nil
}

// prepare validates form locally and, for stock-out only, against current
// stock. Nothing reaches the backend when validation fails.
func (s *RequestService) prepare(
	ctx context.Context,
	sess *domainauth.Session,
	form inventory.RequestForm,
) (string, inventory.RequestInput, error) {
	token, err := bearer(sess, msgMissingAccessToken)
	if err != nil {
		return "", inventory.RequestInput{}, err
	}
	in, err := form.Validate()
	if err != nil {
		return "", inventory.RequestInput{}, validationError(err)
	}
	if !in.NeedsStock() {
		return token, in, nil
	}
	products, err := s.Products(ctx)
	if err != nil {
		return "", inventory.RequestInput{}, err
	}
	if err := in.CheckStock(inventory.IndexProducts(products)); err != nil {
		return "", inventory.RequestInput{}, validationError(err)
	}
	return token, in, nil
}
