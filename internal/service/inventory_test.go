package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/mocks"
	"github.com/dreamteam/stockme-dashboard/internal/testutil"
)

func validProductForm() inventory.ProductForm {
	return inventory.ProductForm{
		Name:          " Azithromycin ",
		SKU:           "AZI-250",
		Category:      "Antibiotics",
		Unit:          "box",
		Description:   "250mg tablets",
		Picture:       "https://img.example.com/azi.png",
		Price:         "120.5",
		StockQuantity: "40",
	}
}

func TestInventoryService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockProductGateway(ctrl)
	svc := NewInventoryService(InventoryServiceOptions{Products: gw})

	products := []inventory.Product{testutil.NewProduct("p1").Build()}
	gw.EXPECT().ListProducts(gomock.Any()).Return(products, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestInventoryService_ListFailureUsesFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockProductGateway(ctrl)
	svc := NewInventoryService(InventoryServiceOptions{Products: gw})

	gw.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("dial tcp: refused"))
	_, err := svc.List(context.Background())
	assert.True(t, apperrors.IsBackend(err))
	assert.Equal(t, "Failed to load inventory records.", apperrors.UserMessage(err, ""))

	gw.EXPECT().ListProducts(gomock.Any()).Return(nil, &backend.APIError{Status: 500, Message: "Server Error"})
	_, err = svc.List(context.Background())
	assert.Equal(t, "Server Error", apperrors.UserMessage(err, ""))
}

func TestInventoryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockProductGateway(ctrl)
	svc := NewInventoryService(InventoryServiceOptions{Products: gw})
	admin := testutil.NewSession().Admin().WithToken("admin-token").Ptr()

	created := testutil.NewProduct("p9").Named("Azithromycin").Build()
	gw.EXPECT().
		CreateProduct(gomock.Any(), "admin-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in inventory.ProductInput) (inventory.Product, error) {
			assert.Equal(t, "Azithromycin", in.Name)
			assert.Equal(t, 120.5, in.Price)
			assert.Equal(t, float64(40), in.StockQuantity)
			assert.True(t, in.IsActive)
			return created, nil
		})

	got, err := svc.Create(context.Background(), admin, validProductForm())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestInventoryService_StaffIsRejectedBeforeNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockProductGateway(ctrl)
	svc := NewInventoryService(InventoryServiceOptions{Products: gw})
	staff := testutil.NewSession().Ptr()
	ctx := context.Background()

	_, err := svc.Create(ctx, staff, validProductForm())
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, InventoryRestricted.Body, apperrors.UserMessage(err, ""))

	_, err = svc.Update(ctx, staff, "p1", validProductForm())
	assert.True(t, apperrors.IsForbidden(err))

	assert.True(t, apperrors.IsForbidden(svc.Delete(ctx, nil, "p1")))
}

func TestInventoryService_ValidationBeforeNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockProductGateway(ctrl)
	svc := NewInventoryService(InventoryServiceOptions{Products: gw})

	form := validProductForm()
	form.Price = "-1"
	_, err := svc.Create(context.Background(), testutil.NewSession().Admin().Ptr(), form)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "price", apperrors.GetField(err))
	assert.Equal(t, "Price must be a valid non-negative number.", apperrors.UserMessage(err, ""))
}

func TestInventoryService_UpdateAndDeleteFallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockProductGateway(ctrl)
	svc := NewInventoryService(InventoryServiceOptions{Products: gw})
	admin := testutil.NewSession().Admin().Ptr()
	ctx := context.Background()

	gw.EXPECT().UpdateProduct(gomock.Any(), "token-1", "p1", gomock.Any()).Return(inventory.Product{}, errors.New("reset by peer"))
	_, err := svc.Update(ctx, admin, "p1", validProductForm())
	assert.Equal(t, "Unable to save product changes. Please try again.", apperrors.UserMessage(err, ""))

	gw.EXPECT().DeleteProduct(gomock.Any(), "token-1", "p1").Return(errors.New("reset by peer"))
	err = svc.Delete(ctx, admin, "p1")
	assert.Equal(t, "Unable to delete product. Please try again.", apperrors.UserMessage(err, ""))

	gw.EXPECT().DeleteProduct(gomock.Any(), "token-1", "p1").Return(&backend.APIError{Status: 401, Message: "Not authorized"})
	err = svc.Delete(ctx, admin, "p1")
	assert.True(t, apperrors.IsUnauthenticated(err))
	assert.Equal(t, "Not authorized", apperrors.UserMessage(err, ""))
}
