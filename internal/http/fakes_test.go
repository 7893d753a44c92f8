package httpx

import (
	"context"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

type fakeAuth struct {
	resolve    func(value string) (*domainauth.Session, error)
	login      func(creds domainauth.Credentials) (*domainauth.Session, error)
	register   func(reg domainauth.Registration) (*service.RegisterResult, error)
	logoutErr  error
	loggedOut  *domainauth.Session
	token      string
	tokenErr   error
	lastIssued *domainauth.Session
}

func (f *fakeAuth) Resolve(_ context.Context, value string) (*domainauth.Session, error) {
	if f.resolve == nil {
		return nil, context.Canceled
	}
	return f.resolve(value)
}

func (f *fakeAuth) Login(_ context.Context, creds domainauth.Credentials) (*domainauth.Session, error) {
	return f.login(creds)
}

func (f *fakeAuth) Register(_ context.Context, reg domainauth.Registration) (*service.RegisterResult, error) {
	return f.register(reg)
}

func (f *fakeAuth) Logout(_ context.Context, sess *domainauth.Session) error {
	f.loggedOut = sess
	return f.logoutErr
}

func (f *fakeAuth) IssueToken(sess *domainauth.Session) (string, error) {
	f.lastIssued = sess
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	if f.token == "" {
		return "signed-token", nil
	}
	return f.token, nil
}

type fakeInventory struct {
	products  []inventory.Product
	listErr   error
	saved     inventory.Product
	saveErr   error
	deleteErr error
	lastForm  inventory.ProductForm
	lastID    string
}

func (f *fakeInventory) List(context.Context) ([]inventory.Product, error) {
	return f.products, f.listErr
}

func (f *fakeInventory) Create(_ context.Context, _ *domainauth.Session, form inventory.ProductForm) (inventory.Product, error) {
	f.lastForm = form
	return f.saved, f.saveErr
}

func (f *fakeInventory) Update(_ context.Context, _ *domainauth.Session, id string, form inventory.ProductForm) (inventory.Product, error) {
	f.lastID, f.lastForm = id, form
	return f.saved, f.saveErr
}

func (f *fakeInventory) Delete(_ context.Context, _ *domainauth.Session, id string) error {
	f.lastID = id
	return f.deleteErr
}

type fakeRequests struct {
	requests    []inventory.Request
	listErr     error
	products    []inventory.Product
	productsErr error
	saved       inventory.Request
	saveErr     error
	deleteErr   error
	lastForm    inventory.RequestForm
	lastID      string
}

func (f *fakeRequests) List(context.Context, *domainauth.Session) ([]inventory.Request, error) {
	return f.requests, f.listErr
}

func (f *fakeRequests) Products(context.Context) ([]inventory.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeRequests) BlankForm() inventory.RequestForm {
	return inventory.RequestForm{TransactionType: inventory.StockIn, TransactionDate: "2025-01-02"}
}

func (f *fakeRequests) EditForm(req inventory.Request) inventory.RequestForm {
	return inventory.RequestForm{
		ProductID:       req.Product.ID,
		TransactionType: req.TransactionType,
		TransactionDate: req.DateOnly(),
	}
}

func (f *fakeRequests) Create(_ context.Context, _ *domainauth.Session, form inventory.RequestForm) (inventory.Request, error) {
	f.lastForm = form
	return f.saved, f.saveErr
}

func (f *fakeRequests) Update(_ context.Context, _ *domainauth.Session, id string, form inventory.RequestForm) (inventory.Request, error) {
	f.lastID, f.lastForm = id, form
	return f.saved, f.saveErr
}

func (f *fakeRequests) Delete(_ context.Context, _ *domainauth.Session, id string) error {
	f.lastID = id
	return f.deleteErr
}

type fakeDirectory struct {
	dir      directory.Directory
	err      error
	calls    int
	lastRole string
}

func (f *fakeDirectory) List(_ context.Context, _ *domainauth.Session, role string) (directory.Directory, error) {
	f.calls++
	f.lastRole = role
	return f.dir, f.err
}

type fakeDashboard struct {
	dash service.Dashboard
}

func (f *fakeDashboard) Load(context.Context, *domainauth.Session) service.Dashboard {
	return f.dash
}

type fakeSettings struct {
	current  workspace.Settings
	getErr   error
	saveErr  error
	saved    *workspace.Settings
	resetErr error
}

func (f *fakeSettings) Get(context.Context) (workspace.Settings, error) {
	if f.getErr != nil {
		return workspace.Settings{}, f.getErr
	}
	if f.current.General.WorkspaceName == "" {
		return workspace.Defaults(), nil
	}
	return f.current, nil
}

func (f *fakeSettings) Save(_ context.Context, _ *domainauth.Session, in workspace.Settings) (workspace.Settings, error) {
	if f.saveErr != nil {
		return workspace.Settings{}, f.saveErr
	}
	f.saved = &in
	f.current = in
	return in, nil
}

func (f *fakeSettings) Reset(context.Context, *domainauth.Session) (workspace.Settings, error) {
	if f.resetErr != nil {
		return workspace.Settings{}, f.resetErr
	}
	f.current = workspace.Defaults()
	return f.current, nil
}
