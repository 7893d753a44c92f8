package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/mocks"
	"github.com/dreamteam/stockme-dashboard/internal/testutil"
)

type dashboardFixture struct {
	svc      *DashboardService
	products *mocks.MockProductGateway
	requests *mocks.MockRequestGateway
	users    *mocks.MockDirectoryGateway
}

func newDashboardFixture(t *testing.T) dashboardFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := dashboardFixture{
		products: mocks.NewMockProductGateway(ctrl),
		requests: mocks.NewMockRequestGateway(ctrl),
		users:    mocks.NewMockDirectoryGateway(ctrl),
	}
	f.svc = NewDashboardService(DashboardServiceOptions{
		Inventory: NewInventoryService(InventoryServiceOptions{Products: f.products}),
		Requests:  NewRequestService(RequestServiceOptions{Requests: f.requests, Products: f.products}),
		Directory: NewDirectoryService(f.users),
	})
	return f
}

func TestDashboardService_LoadStaff(t *testing.T) {
	f := newDashboardFixture(t)
	f.products.EXPECT().ListProducts(gomock.Any()).Return([]inventory.Product{
		testutil.NewProduct("p1").WithStock(10).Build(),
		testutil.NewProduct("p2").WithStock(2.5).Build(),
	}, nil)
	f.requests.EXPECT().ListRequests(gomock.Any(), "token-1").Return([]inventory.Request{
		{ID: "r1", TransactionType: inventory.StockIn},
		{ID: "r2", TransactionType: inventory.StockIn},
		{ID: "r3", TransactionType: inventory.StockOut},
	}, nil)

	d := f.svc.Load(context.Background(), testutil.NewSession().Ptr())

	assert.True(t, d.Directory.Skipped, "staff never loads the directory")
	assert.Nil(t, d.Users)
	assert.Equal(t, inventory.StockStats{
		TotalProducts:   2,
		TotalStockUnits: 12.5,
		TotalRequests:   3,
		StockIn:         2,
		StockOut:        1,
	}, d.Stats)
	require.Len(t, d.Donut, 2)
	assert.Equal(t, 67, d.Donut[0].Percentage)
	assert.Equal(t, 33, d.Donut[1].Percentage)
}

func TestDashboardService_SectionsFailIndependently(t *testing.T) {
	f := newDashboardFixture(t)
	f.products.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("down"))
	f.requests.EXPECT().ListRequests(gomock.Any(), gomock.Any()).Return([]inventory.Request{
		{ID: "r1", TransactionType: inventory.StockOut},
	}, nil)
	f.users.EXPECT().ListUsers(gomock.Any(), gomock.Any(), gomock.Any()).Return(directory.Response{
		Data: []directory.Entry{{ID: "u1", Role: "admin"}, {ID: "u2", Role: "staff"}},
		RoleSummary: map[string]directory.Number{
			"admin": 1,
			"staff": 1,
		},
	}, nil)

	d := f.svc.Load(context.Background(), testutil.NewSession().Admin().Ptr())

	assert.True(t, d.Products.Failed())
	assert.Equal(t, "Failed to load inventory records.", apperrors.UserMessage(d.Products.Err, ""))
	assert.False(t, d.Requests.Failed())
	assert.Equal(t, 1, d.Stats.StockOut)
	require.NotNil(t, d.Users)
	assert.Equal(t, UserCounts{Total: 2, Admins: 1, Staff: 1}, *d.Users)
}

func TestDashboardService_LoadAnonymous(t *testing.T) {
	f := newDashboardFixture(t)
	f.products.EXPECT().ListProducts(gomock.Any()).Return(nil, nil)

	d := f.svc.Load(context.Background(), nil)

	assert.True(t, d.Requests.Skipped)
	assert.True(t, d.Directory.Skipped)
	assert.Empty(t, d.Donut)
	assert.False(t, d.Decision.IsAuthenticated)
}
