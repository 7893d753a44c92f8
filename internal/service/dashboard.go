package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
)

// Section is one independently loaded part of a page.
type Section[T any] struct {
	Data    T
	Err     error
	Skipped bool
}

// Failed reports whether the section was attempted and errored.
func (s Section[T]) Failed() bool { return s.Err != nil }

// UserCounts are the admin-only directory totals.
type UserCounts struct {
	Total  int
	Admins int
	Staff  int
}

// Dashboard is the home page model.
type Dashboard struct {
	Decision  domainauth.Decision
	Products  Section[[]inventory.Product]
	Requests  Section[[]inventory.Request]
	Directory Section[directory.Directory]
	Stats     inventory.StockStats
	Donut     []inventory.DonutSegment
	Users     *UserCounts
}

// DashboardServiceOptions groups the page services the dashboard reads from.
type DashboardServiceOptions struct {
	Inventory *InventoryService
	Requests  *RequestService
	Directory *DirectoryService
}

// DashboardService assembles the dashboard from concurrent loads.
type DashboardService struct {
	inventory *InventoryService
	requests  *RequestService
	directory *DirectoryService
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Inventory == nil || opts.Requests == nil || opts.Directory == nil {
		panic("dashboard services are required")
	}
	return &DashboardService{inventory: opts.Inventory, requests: opts.Requests, directory: opts.Directory}
}

// Load fetches products, requests (when signed in) and, for admins, the
// directory in parallel. A failing section never blanks the others.
func (s *DashboardService) Load(ctx context.Context, sess *domainauth.Session) Dashboard {
	d := Dashboard{Decision: domainauth.Decide(sess)}

	var g errgroup.Group
	g.Go(func() error {
		d.Products.Data, d.Products.Err = s.inventory.List(ctx)
		return nil
	})
	if sess != nil && sess.AccessToken != "" {
		g.Go(func() error {
			d.Requests.Data, d.Requests.Err = s.requests.List(ctx, sess)
			return nil
		})
	} else {
		d.Requests.Skipped = true
	}
	if CanViewDirectory(d.Decision) {
		g.Go(func() error {
			d.Directory.Data, d.Directory.Err = s.directory.List(ctx, sess, directory.RoleFilterAll)
			return nil
		})
	} else {
		d.Directory.Skipped = true
	}
	_ = g.Wait()

	d.Stats = inventory.ComputeStats(d.Products.Data, d.Requests.Data)
	d.Donut = d.Stats.Donut()
	if !d.Directory.Skipped && d.Directory.Err == nil {
		meta := d.Directory.Data.Meta
		d.Users = &UserCounts{
			Total:  meta.TotalUsers,
			Admins: meta.RoleSummary[domainauth.RoleAdmin],
			Staff:  meta.RoleSummary[domainauth.RoleStaff],
		}
	}
	return d
}
