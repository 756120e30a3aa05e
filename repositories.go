package gobucket

import (
	"context"
	"fmt"
	"iter"
)

// RepositoriesService accesses repositories, their refs, and commits.
type RepositoriesService struct {
	client *Client
}

// RepositoryListOptions filters repository listings.
type RepositoryListOptions struct {
	ListOptions

	// Role restricts results to repositories
	// where the authenticated user has this role
	// (member, contributor, admin, or owner).
	Role string `url:"role,omitempty"`

	// Query is a Bitbucket filter expression,
	// e.g. `name ~ "infra"`.
	Query string `url:"q,omitempty"`

	Sort string `url:"sort,omitempty"`
}

// List fetches a single page of repositories in the workspace.
func (s *RepositoriesService) List(ctx context.Context, workspace string, opts *RepositoryListOptions) ([]*Repository, error) {
	path, err := addOptions("/repositories/"+escape(workspace), opts)
	if err != nil {
		return nil, err
	}

	repos, err := listPage[Repository](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	return repos, nil
}

// All iterates over every repository in the workspace.
func (s *RepositoriesService) All(ctx context.Context, workspace string, opts *RepositoryListOptions) iter.Seq2[*Repository, error] {
	path, err := addOptions("/repositories/"+escape(workspace), opts)
	if err != nil {
		return yieldErr[Repository](err)
	}
	return allPages[Repository](ctx, s.client, path)
}

// Get fetches a repository by workspace and slug.
func (s *RepositoriesService) Get(ctx context.Context, workspace, slug string) (*Repository, error) {
	var repo Repository
	if err := s.client.get(ctx, repoPath(workspace, slug), &repo); err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}
	return &repo, nil
}

// CreateRepositoryRequest describes a repository to create.
type CreateRepositoryRequest struct {
	SCM         string      `json:"scm,omitempty"` // always "git" on Bitbucket Cloud
	Description string      `json:"description,omitempty"`
	IsPrivate   bool        `json:"is_private"`
	ForkPolicy  string      `json:"fork_policy,omitempty"`
	Language    string      `json:"language,omitempty"`
	Project     *ProjectKey `json:"project,omitempty"`
}

// ProjectKey references a project by its key.
type ProjectKey struct {
	Key string `json:"key"`
}

// Create creates a repository at workspace/slug.
func (s *RepositoriesService) Create(ctx context.Context, workspace, slug string, req *CreateRepositoryRequest) (*Repository, error) {
	var repo Repository
	if err := s.client.post(ctx, repoPath(workspace, slug), req, &repo); err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	return &repo, nil
}

// UpdateRepositoryRequest holds the mutable fields of a repository.
// Nil fields are left unchanged.
type UpdateRepositoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
	ForkPolicy  *string `json:"fork_policy,omitempty"`
	Language    *string `json:"language,omitempty"`
}

// Update modifies an existing repository.
func (s *RepositoriesService) Update(ctx context.Context, workspace, slug string, req *UpdateRepositoryRequest) (*Repository, error) {
	var repo Repository
	if err := s.client.put(ctx, repoPath(workspace, slug), req, &repo); err != nil {
		return nil, fmt.Errorf("update repository: %w", err)
	}
	return &repo, nil
}

// Delete permanently deletes a repository. This cannot be undone.
func (s *RepositoriesService) Delete(ctx context.Context, workspace, slug string) error {
	if err := s.client.delete(ctx, repoPath(workspace, slug)); err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	return nil
}

// ForkRepositoryRequest describes the fork to create.
type ForkRepositoryRequest struct {
	// Name of the fork; defaults to the source repository's name.
	Name string `json:"name,omitempty"`

	// Workspace to fork into; defaults to the user's personal workspace.
	Workspace *WorkspaceRef `json:"workspace,omitempty"`

	IsPrivate *bool `json:"is_private,omitempty"`
}

// WorkspaceRef references a workspace by slug.
type WorkspaceRef struct {
	Slug string `json:"slug"`
}

// Fork creates a fork of the repository.
func (s *RepositoriesService) Fork(ctx context.Context, workspace, slug string, req *ForkRepositoryRequest) (*Repository, error) {
	var repo Repository
	if err := s.client.post(ctx, repoPath(workspace, slug)+"/forks", req, &repo); err != nil {
		return nil, fmt.Errorf("fork repository: %w", err)
	}
	return &repo, nil
}

// Watchers fetches a single page of users watching the repository.
func (s *RepositoriesService) Watchers(ctx context.Context, workspace, slug string, opts *ListOptions) ([]*Account, error) {
	path, err := addOptions(repoPath(workspace, slug)+"/watchers", opts)
	if err != nil {
		return nil, err
	}

	watchers, err := listPage[Account](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list watchers: %w", err)
	}
	return watchers, nil
}

// ListBranches fetches a single page of branches.
func (s *RepositoriesService) ListBranches(ctx context.Context, workspace, slug string, opts *ListOptions) ([]*Branch, error) {
	path, err := addOptions(repoPath(workspace, slug)+"/refs/branches", opts)
	if err != nil {
		return nil, err
	}

	branches, err := listPage[Branch](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// AllBranches iterates over every branch in the repository.
func (s *RepositoriesService) AllBranches(ctx context.Context, workspace, slug string, opts *ListOptions) iter.Seq2[*Branch, error] {
	path, err := addOptions(repoPath(workspace, slug)+"/refs/branches", opts)
	if err != nil {
		return yieldErr[Branch](err)
	}
	return allPages[Branch](ctx, s.client, path)
}

// GetBranch fetches a single branch by name.
func (s *RepositoriesService) GetBranch(ctx context.Context, workspace, slug, name string) (*Branch, error) {
	var branch Branch
	path := repoPath(workspace, slug) + "/refs/branches/" + escape(name)
	if err := s.client.get(ctx, path, &branch); err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &branch, nil
}

// ListTags fetches a single page of tags.
func (s *RepositoriesService) ListTags(ctx context.Context, workspace, slug string, opts *ListOptions) ([]*Tag, error) {
	path, err := addOptions(repoPath(workspace, slug)+"/refs/tags", opts)
	if err != nil {
		return nil, err
	}

	tags, err := listPage[Tag](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// ListCommits fetches a single page of commits.
// rev names a branch, tag, or commit to start from;
// if empty, the repository's main branch is used.
func (s *RepositoriesService) ListCommits(ctx context.Context, workspace, slug, rev string, opts *ListOptions) ([]*Commit, error) {
	path, err := addOptions(commitsPath(workspace, slug, rev), opts)
	if err != nil {
		return nil, err
	}

	commits, err := listPage[Commit](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	return commits, nil
}

// AllCommits iterates over the commit history starting at rev.
func (s *RepositoriesService) AllCommits(ctx context.Context, workspace, slug, rev string, opts *ListOptions) iter.Seq2[*Commit, error] {
	path, err := addOptions(commitsPath(workspace, slug, rev), opts)
	if err != nil {
		return yieldErr[Commit](err)
	}
	return allPages[Commit](ctx, s.client, path)
}

// GetCommit fetches a single commit by hash.
func (s *RepositoriesService) GetCommit(ctx context.Context, workspace, slug, hash string) (*Commit, error) {
	var commit Commit
	path := repoPath(workspace, slug) + "/commit/" + escape(hash)
	if err := s.client.get(ctx, path, &commit); err != nil {
		return nil, fmt.Errorf("get commit: %w", err)
	}
	return &commit, nil
}

func repoPath(workspace, slug string) string {
	return fmt.Sprintf("/repositories/%s/%s", escape(workspace), escape(slug))
}

func commitsPath(workspace, slug, rev string) string {
	path := repoPath(workspace, slug) + "/commits"
	if rev != "" {
		path += "/" + escape(rev)
	}
	return path
}
