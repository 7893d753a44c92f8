// Package mocks provides gomock doubles for the ports the services depend on.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	gw := mocks.NewMockProductGateway(ctrl)
//	gw.EXPECT().ListProducts(gomock.Any()).Return(products, nil)
package mocks

// AuthGateway, SessionStore and SessionCodec from internal/ports/auth.go.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_mock.go github.com/dreamteam/stockme-dashboard/internal/ports AuthGateway,SessionStore,SessionCodec

// ProductGateway, RequestGateway and DirectoryGateway from internal/ports/inventory.go.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=inventory_mock.go github.com/dreamteam/stockme-dashboard/internal/ports ProductGateway,RequestGateway,DirectoryGateway

// SettingsRepository from internal/ports/settings.go.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=settings_mock.go github.com/dreamteam/stockme-dashboard/internal/ports SettingsRepository
