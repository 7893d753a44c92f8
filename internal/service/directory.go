package service

import (
	"context"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

const msgDirectoryLoad = "Unable to load the user directory."

// DirectoryService loads the admin user directory.
type DirectoryService struct {
	users ports.DirectoryGateway
}

// NewDirectoryService constructs a new DirectoryService.
func NewDirectoryService(users ports.DirectoryGateway) *DirectoryService {
	if users == nil {
		panic("DirectoryGateway is required")
	}
	return &DirectoryService{users: users}
}

// List returns the normalised directory, filtered server-side by role
// ("admin", "staff", anything else for all). Admin only.
func (s *DirectoryService) List(ctx context.Context, sess *domainauth.Session, roleFilter string) (directory.Directory, error) {
	if !CanViewDirectory(domainauth.Decide(sess)) {
		return directory.Directory{}, forbidden(DirectoryRestricted)
	}
	token, err := bearer(sess, msgMissingAccessToken)
	if err != nil {
		return directory.Directory{}, err
	}
	role, _ := directory.ParseRoleFilter(roleFilter)
	resp, err := s.users.ListUsers(ctx, token, role)
	if err != nil {
		return directory.Directory{}, backend.Translate(err, msgDirectoryLoad)
	}
	return directory.Normalize(resp), nil
}
