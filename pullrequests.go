package gobucket

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
)

// PullRequestsService accesses pull requests and their comments.
type PullRequestsService struct {
	client *Client
}

// PullRequestListOptions filters pull request listings.
type PullRequestListOptions struct {
	ListOptions

	// State restricts results to the given states
	// (OPEN, MERGED, DECLINED, SUPERSEDED).
	// Defaults to OPEN on the server side.
	State []string `url:"state,omitempty"`

	// Query is a Bitbucket filter expression.
	Query string `url:"q,omitempty"`

	Sort string `url:"sort,omitempty"`
}

// List fetches a single page of pull requests.
func (s *PullRequestsService) List(ctx context.Context, workspace, slug string, opts *PullRequestListOptions) ([]*PullRequest, error) {
	path, err := addOptions(repoPath(workspace, slug)+"/pullrequests", opts)
	if err != nil {
		return nil, err
	}

	prs, err := listPage[PullRequest](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}
	return prs, nil
}

// All iterates over every matching pull request.
func (s *PullRequestsService) All(ctx context.Context, workspace, slug string, opts *PullRequestListOptions) iter.Seq2[*PullRequest, error] {
	path, err := addOptions(repoPath(workspace, slug)+"/pullrequests", opts)
	if err != nil {
		return yieldErr[PullRequest](err)
	}
	return allPages[PullRequest](ctx, s.client, path)
}

// Get fetches a pull request by ID.
func (s *PullRequestsService) Get(ctx context.Context, workspace, slug string, id int64) (*PullRequest, error) {
	var pr PullRequest
	if err := s.client.get(ctx, prPath(workspace, slug, id), &pr); err != nil {
		return nil, fmt.Errorf("get pull request: %w", err)
	}
	return &pr, nil
}

// CreatePullRequestRequest describes a pull request to open.
type CreatePullRequestRequest struct {
	// Title of the pull request. Required.
	Title string

	// Description is the pull request body, in markdown.
	Description string

	// SourceBranch is the branch to merge from. Required.
	SourceBranch string

	// DestinationBranch is the branch to merge into.
	// Defaults to the repository's main branch.
	DestinationBranch string

	// Reviewers are usernames or nicknames of workspace members
	// to request review from. They are resolved to account UUIDs
	// before submission.
	Reviewers []string

	// CloseSourceBranch deletes the source branch after merging.
	CloseSourceBranch bool

	// Draft marks the pull request as a draft.
	Draft bool
}

type createPullRequestBody struct {
	Title             string               `json:"title"`
	Description       string               `json:"description,omitempty"`
	Source            PullRequestEndpoint  `json:"source"`
	Destination       *PullRequestEndpoint `json:"destination,omitempty"`
	Reviewers         []reviewerRef        `json:"reviewers,omitempty"`
	CloseSourceBranch bool                 `json:"close_source_branch,omitempty"`
	Draft             bool                 `json:"draft,omitempty"`
}

type reviewerRef struct {
	UUID string `json:"uuid"`
}

// Create opens a new pull request.
// Reviewer names are resolved through the workspace member list;
// an unknown reviewer fails the whole request.
// Returns [ErrBranchNotFound] if the destination branch does not exist.
func (s *PullRequestsService) Create(ctx context.Context, workspace, slug string, req *CreatePullRequestRequest) (*PullRequest, error) {
	reviewers, err := s.resolveReviewers(ctx, workspace, req.Reviewers)
	if err != nil {
		return nil, fmt.Errorf("resolve reviewers: %w", err)
	}

	body := &createPullRequestBody{
		Title:             req.Title,
		Description:       req.Description,
		Source:            PullRequestEndpoint{Branch: BranchRef{Name: req.SourceBranch}},
		Reviewers:         reviewers,
		CloseSourceBranch: req.CloseSourceBranch,
		Draft:             req.Draft,
	}
	if req.DestinationBranch != "" {
		body.Destination = &PullRequestEndpoint{Branch: BranchRef{Name: req.DestinationBranch}}
	}

	var pr PullRequest
	if err := s.client.post(ctx, repoPath(workspace, slug)+"/pullrequests", body, &pr); err != nil {
		if isDestinationBranchNotFound(err) {
			return nil, fmt.Errorf("create pull request: destination %q: %w",
				req.DestinationBranch, ErrBranchNotFound)
		}
		return nil, fmt.Errorf("create pull request: %w", err)
	}

	s.client.log.Debug("Created pull request", "pr", pr.ID)
	return &pr, nil
}

// isDestinationBranchNotFound checks if the error indicates
// the destination branch doesn't exist.
func isDestinationBranchNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode != 400 {
		return false
	}
	return strings.Contains(apiErr.Body, "destination") &&
		strings.Contains(apiErr.Body, "branch not found")
}

func (s *PullRequestsService) resolveReviewers(ctx context.Context, workspace string, usernames []string) ([]reviewerRef, error) {
	if len(usernames) == 0 {
		return nil, nil
	}

	reviewers := make([]reviewerRef, 0, len(usernames))
	for _, username := range usernames {
		user, err := s.client.Workspaces.FindMember(ctx, workspace, username)
		if err != nil {
			return nil, fmt.Errorf("lookup user %q: %w", username, err)
		}
		reviewers = append(reviewers, reviewerRef{UUID: user.UUID})
		s.client.log.Debug("Resolved reviewer", "username", username, "uuid", user.UUID)
	}
	return reviewers, nil
}

// UpdatePullRequestRequest holds the mutable fields of a pull request.
// Nil fields are left unchanged.
type UpdatePullRequestRequest struct {
	Title             *string
	Description       *string
	DestinationBranch *string
}

// Update modifies an open pull request.
func (s *PullRequestsService) Update(ctx context.Context, workspace, slug string, id int64, req *UpdatePullRequestRequest) (*PullRequest, error) {
	body := map[string]any{}
	if req.Title != nil {
		body["title"] = *req.Title
	}
	if req.Description != nil {
		body["description"] = *req.Description
	}
	if req.DestinationBranch != nil {
		body["destination"] = PullRequestEndpoint{
			Branch: BranchRef{Name: *req.DestinationBranch},
		}
	}

	var pr PullRequest
	if err := s.client.put(ctx, prPath(workspace, slug, id), body, &pr); err != nil {
		return nil, fmt.Errorf("update pull request: %w", err)
	}
	return &pr, nil
}

// Approve approves the pull request as the authenticated user.
func (s *PullRequestsService) Approve(ctx context.Context, workspace, slug string, id int64) (*Participant, error) {
	var p Participant
	if err := s.client.post(ctx, prPath(workspace, slug, id)+"/approve", nil, &p); err != nil {
		return nil, fmt.Errorf("approve pull request: %w", err)
	}
	return &p, nil
}

// Unapprove withdraws the authenticated user's approval.
func (s *PullRequestsService) Unapprove(ctx context.Context, workspace, slug string, id int64) error {
	if err := s.client.delete(ctx, prPath(workspace, slug, id)+"/approve"); err != nil {
		return fmt.Errorf("unapprove pull request: %w", err)
	}
	return nil
}

// RequestChanges marks the pull request as needing changes.
func (s *PullRequestsService) RequestChanges(ctx context.Context, workspace, slug string, id int64) (*Participant, error) {
	var p Participant
	if err := s.client.post(ctx, prPath(workspace, slug, id)+"/request-changes", nil, &p); err != nil {
		return nil, fmt.Errorf("request changes: %w", err)
	}
	return &p, nil
}

// Decline declines (closes) the pull request without merging.
func (s *PullRequestsService) Decline(ctx context.Context, workspace, slug string, id int64) (*PullRequest, error) {
	var pr PullRequest
	if err := s.client.post(ctx, prPath(workspace, slug, id)+"/decline", nil, &pr); err != nil {
		return nil, fmt.Errorf("decline pull request: %w", err)
	}
	return &pr, nil
}

// MergePullRequestRequest controls how a pull request is merged.
type MergePullRequestRequest struct {
	// Message is the merge commit message.
	Message string `json:"message,omitempty"`

	// MergeStrategy is one of merge_commit, squash, or fast_forward.
	MergeStrategy string `json:"merge_strategy,omitempty"`

	// CloseSourceBranch deletes the source branch after merging.
	CloseSourceBranch bool `json:"close_source_branch,omitempty"`
}

// Merge merges an open pull request into its destination branch.
// A nil req merges with the server defaults.
func (s *PullRequestsService) Merge(ctx context.Context, workspace, slug string, id int64, req *MergePullRequestRequest) (*PullRequest, error) {
	var pr PullRequest
	if err := s.client.post(ctx, prPath(workspace, slug, id)+"/merge", req, &pr); err != nil {
		return nil, fmt.Errorf("merge pull request: %w", err)
	}

	s.client.log.Debug("Merged pull request", "pr", id)
	return &pr, nil
}

// Commits fetches a single page of the pull request's commits.
func (s *PullRequestsService) Commits(ctx context.Context, workspace, slug string, id int64, opts *ListOptions) ([]*Commit, error) {
	path, err := addOptions(prPath(workspace, slug, id)+"/commits", opts)
	if err != nil {
		return nil, err
	}

	commits, err := listPage[Commit](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list pull request commits: %w", err)
	}
	return commits, nil
}

// Activity fetches a single page of the pull request's activity feed.
func (s *PullRequestsService) Activity(ctx context.Context, workspace, slug string, id int64, opts *ListOptions) ([]*Activity, error) {
	path, err := addOptions(prPath(workspace, slug, id)+"/activity", opts)
	if err != nil {
		return nil, err
	}

	activity, err := listPage[Activity](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list pull request activity: %w", err)
	}
	return activity, nil
}

// Diff fetches the pull request's diff as a raw unified diff.
func (s *PullRequestsService) Diff(ctx context.Context, workspace, slug string, id int64) (string, error) {
	var diff string
	if err := s.client.get(ctx, prPath(workspace, slug, id)+"/diff", &diff); err != nil {
		return "", fmt.Errorf("get pull request diff: %w", err)
	}
	return diff, nil
}

func prPath(workspace, slug string, id int64) string {
	return fmt.Sprintf("%s/pullrequests/%d", repoPath(workspace, slug), id)
}
