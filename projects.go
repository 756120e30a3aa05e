package gobucket

import (
	"context"
	"fmt"
	"iter"
)

// ProjectsService accesses workspace projects.
type ProjectsService struct {
	client *Client
}

// ProjectListOptions filters project listings.
type ProjectListOptions struct {
	ListOptions

	// Query is a Bitbucket filter expression.
	Query string `url:"q,omitempty"`

	Sort string `url:"sort,omitempty"`
}

// List fetches a single page of projects in the workspace.
func (s *ProjectsService) List(ctx context.Context, workspace string, opts *ProjectListOptions) ([]*Project, error) {
	path, err := addOptions(projectsPath(workspace), opts)
	if err != nil {
		return nil, err
	}

	projects, err := listPage[Project](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// All iterates over every project in the workspace.
func (s *ProjectsService) All(ctx context.Context, workspace string, opts *ProjectListOptions) iter.Seq2[*Project, error] {
	path, err := addOptions(projectsPath(workspace), opts)
	if err != nil {
		return yieldErr[Project](err)
	}
	return allPages[Project](ctx, s.client, path)
}

// Get fetches a project by key.
func (s *ProjectsService) Get(ctx context.Context, workspace, key string) (*Project, error) {
	var project Project
	if err := s.client.get(ctx, projectPath(workspace, key), &project); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}

// CreateProjectRequest describes a project to create.
type CreateProjectRequest struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPrivate   bool   `json:"is_private"`
}

// Create creates a project in the workspace.
func (s *ProjectsService) Create(ctx context.Context, workspace string, req *CreateProjectRequest) (*Project, error) {
	var project Project
	if err := s.client.post(ctx, projectsPath(workspace), req, &project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// UpdateProjectRequest holds the mutable fields of a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
}

// Update modifies an existing project.
func (s *ProjectsService) Update(ctx context.Context, workspace, key string, req *UpdateProjectRequest) (*Project, error) {
	var project Project
	if err := s.client.put(ctx, projectPath(workspace, key), req, &project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &project, nil
}

// Delete deletes an empty project.
// Projects that still contain repositories cannot be deleted.
func (s *ProjectsService) Delete(ctx context.Context, workspace, key string) error {
	if err := s.client.delete(ctx, projectPath(workspace, key)); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func projectsPath(workspace string) string {
	return fmt.Sprintf("/workspaces/%s/projects", escape(workspace))
}

func projectPath(workspace, key string) string {
	return fmt.Sprintf("%s/%s", projectsPath(workspace), escape(key))
}
