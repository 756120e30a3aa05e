package gobucket

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// WorkspacesService accesses workspaces and their members.
type WorkspacesService struct {
	client *Client
}

// WorkspaceListOptions filters workspace listings.
type WorkspaceListOptions struct {
	ListOptions

	// Role restricts results to workspaces
	// where the authenticated user has this role
	// (member, collaborator, or owner).
	Role string `url:"role,omitempty"`

	// Query is a Bitbucket filter expression.
	Query string `url:"q,omitempty"`

	Sort string `url:"sort,omitempty"`
}

// List fetches a single page of workspaces
// visible to the authenticated user.
func (s *WorkspacesService) List(ctx context.Context, opts *WorkspaceListOptions) ([]*Workspace, error) {
	path, err := addOptions("/workspaces", opts)
	if err != nil {
		return nil, err
	}

	workspaces, err := listPage[Workspace](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// All iterates over every workspace visible to the authenticated user.
func (s *WorkspacesService) All(ctx context.Context, opts *WorkspaceListOptions) iter.Seq2[*Workspace, error] {
	path, err := addOptions("/workspaces", opts)
	if err != nil {
		return yieldErr[Workspace](err)
	}
	return allPages[Workspace](ctx, s.client, path)
}

// Get fetches a workspace by slug or UUID.
func (s *WorkspacesService) Get(ctx context.Context, workspace string) (*Workspace, error) {
	var ws Workspace
	if err := s.client.get(ctx, "/workspaces/"+escape(workspace), &ws); err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

// Members fetches a single page of workspace members.
func (s *WorkspacesService) Members(ctx context.Context, workspace string, opts *ListOptions) ([]*WorkspaceMembership, error) {
	path, err := addOptions(membersPath(workspace), opts)
	if err != nil {
		return nil, err
	}

	members, err := listPage[WorkspaceMembership](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list workspace members: %w", err)
	}
	return members, nil
}

// AllMembers iterates over every member of the workspace.
func (s *WorkspacesService) AllMembers(ctx context.Context, workspace string, opts *ListOptions) iter.Seq2[*WorkspaceMembership, error] {
	path, err := addOptions(membersPath(workspace), opts)
	if err != nil {
		return yieldErr[WorkspaceMembership](err)
	}
	return allPages[WorkspaceMembership](ctx, s.client, path)
}

// FindMember searches the workspace for a member by username or nickname.
// Returns [ErrNotFound] if no member matches.
func (s *WorkspacesService) FindMember(ctx context.Context, workspace, username string) (*Account, error) {
	for member, err := range s.AllMembers(ctx, workspace, nil) {
		if err != nil {
			return nil, err
		}
		if matchesUsername(&member.User, username) {
			return &member.User, nil
		}
	}
	return nil, fmt.Errorf("member %q of workspace %q: %w", username, workspace, ErrNotFound)
}

func membersPath(workspace string) string {
	return fmt.Sprintf("/workspaces/%s/members", escape(workspace))
}

// matchesUsername checks Username first (for legacy accounts),
// then Nickname, since Bitbucket deprecated usernames.
func matchesUsername(user *Account, username string) bool {
	if user.Username != "" && strings.EqualFold(user.Username, username) {
		return true
	}
	return strings.EqualFold(user.Nickname, username)
}

// yieldErr returns an iterator that yields only the given error.
func yieldErr[T any](err error) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		yield(nil, err)
	}
}
