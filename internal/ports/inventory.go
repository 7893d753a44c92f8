package ports

import (
	"context"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
)

// ProductGateway reads and mutates catalogue items on the backend.
type ProductGateway interface {
	ListProducts(ctx context.Context) ([]inventory.Product, error)
	CreateProduct(ctx context.Context, token string, in inventory.ProductInput) (inventory.Product, error)
	UpdateProduct(ctx context.Context, token, id string, in inventory.ProductInput) (inventory.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// RequestGateway reads and mutates stock requests on the backend.
type RequestGateway interface {
	ListRequests(ctx context.Context, token string) ([]inventory.Request, error)
	CreateRequest(ctx context.Context, token string, in inventory.RequestInput) (inventory.Request, error)
	UpdateRequest(ctx context.Context, token, id string, in inventory.RequestInput) (inventory.Request, error)
	DeleteRequest(ctx context.Context, token, id string) error
}

// DirectoryGateway lists user accounts. An empty role lists everyone.
type DirectoryGateway interface {
	ListUsers(ctx context.Context, token string, role domainauth.Role) (directory.Response, error)
}
