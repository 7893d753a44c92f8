package httpx

import (
	"net/http"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var usersMeta = PageMeta{Title: "Users Directory · StockMe", PageTitle: "Users Directory", CurrentPage: PageUsers}

const usersTableTarget = "users-table"

// RoleOption is an entry in the role filter.
type RoleOption struct {
	Value string
	Label string
}

func roleOptions() []RoleOption {
	opts := []RoleOption{{Value: directory.RoleFilterAll, Label: "All roles"}}
	for _, r := range domainauth.Roles {
		opts = append(opts, RoleOption{Value: string(r), Label: r.Label()})
	}
	return opts
}

// Users renders the admin user directory. Staff see the restriction notice and
// nothing is fetched.
// GET /users?role=<all|admin|staff>&search=<q>.
func (h *UIHandlers) Users(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	q := r.URL.Query()
	_, role := directory.ParseRoleFilter(q.Get("role"))
	search := q.Get("search")

	b := h.pageData(r, usersMeta).
		With("Role", role).
		With("Search", search).
		With("RoleOptions", roleOptions()).
		With("Meta", directory.EmptyMeta())

	if !service.CanViewDirectory(DecisionFromContext(r.Context())) {
		b.WithNotice(service.DirectoryRestricted).With("Restricted", true)
		h.renderPage(w, r, b.Build())
		return
	}

	dir, err := h.DirectorySvc.List(r.Context(), sess, role)
	if err != nil {
		h.logger().WarnContext(r.Context(), "directory load failed", "error", err)
		b.WithError(apperrors.UserMessage(err, "Unable to load the user directory."), r.URL.RequestURI())
		if notice, ok := noticeForError(err); ok {
			b.WithNotice(notice)
		}
	} else {
		b.With("Meta", dir.Meta)
	}
	b.With("Entries", directory.Search(dir.Entries, search)).
		With("TotalEntries", len(dir.Entries))

	data := b.Build()
	if IsHTMX(r) && HXTarget(r) == usersTableTarget {
		h.renderFragment(w, r, "users-table", data)
		return
	}
	h.renderPage(w, r, data)
}
