package gobucket

import (
	"context"
	"fmt"
	"iter"
)

// _commentsPageSize is the number of comments fetched per page.
// It's a variable so tests can override it.
var _commentsPageSize = 100

// CommentListOptions filters comment listings.
type CommentListOptions struct {
	ListOptions

	// Query is a Bitbucket filter expression.
	Query string `url:"q,omitempty"`
}

// ListComments fetches a single page of comments on a pull request.
func (s *PullRequestsService) ListComments(ctx context.Context, workspace, slug string, id int64, opts *CommentListOptions) ([]*Comment, error) {
	path, err := addOptions(commentsPath(workspace, slug, id), opts)
	if err != nil {
		return nil, err
	}

	comments, err := listPage[Comment](ctx, s.client, path)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AllComments iterates over every comment on a pull request.
// Pages are fetched 100 at a time unless opts sets PageLen.
func (s *PullRequestsService) AllComments(ctx context.Context, workspace, slug string, id int64, opts *CommentListOptions) iter.Seq2[*Comment, error] {
	var o CommentListOptions
	if opts != nil {
		o = *opts
	}
	if o.PageLen == 0 {
		o.PageLen = _commentsPageSize
	}

	path, err := addOptions(commentsPath(workspace, slug, id), &o)
	if err != nil {
		return yieldErr[Comment](err)
	}
	return allPages[Comment](ctx, s.client, path)
}

// GetComment fetches a single comment on a pull request.
func (s *PullRequestsService) GetComment(ctx context.Context, workspace, slug string, prID, commentID int64) (*Comment, error) {
	var comment Comment
	if err := s.client.get(ctx, commentPath(workspace, slug, prID, commentID), &comment); err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

type createCommentBody struct {
	Content Content        `json:"content"`
	Inline  *InlineComment `json:"inline,omitempty"`
}

// AddComment posts a comment on a pull request.
func (s *PullRequestsService) AddComment(ctx context.Context, workspace, slug string, id int64, body string) (*Comment, error) {
	req := &createCommentBody{Content: Content{Raw: body}}

	var comment Comment
	if err := s.client.post(ctx, commentsPath(workspace, slug, id), req, &comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// AddInlineComment posts a comment anchored to a line in the diff.
func (s *PullRequestsService) AddInlineComment(ctx context.Context, workspace, slug string, id int64, body string, inline *InlineComment) (*Comment, error) {
	req := &createCommentBody{
		Content: Content{Raw: body},
		Inline:  inline,
	}

	var comment Comment
	if err := s.client.post(ctx, commentsPath(workspace, slug, id), req, &comment); err != nil {
		return nil, fmt.Errorf("create inline comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment replaces the body of an existing comment.
// Returns [ErrNotFound] if the comment was deleted
// or belongs to a different pull request.
func (s *PullRequestsService) UpdateComment(ctx context.Context, workspace, slug string, prID, commentID int64, body string) (*Comment, error) {
	req := &createCommentBody{Content: Content{Raw: body}}

	var comment Comment
	if err := s.client.put(ctx, commentPath(workspace, slug, prID, commentID), req, &comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment deletes a comment on a pull request.
func (s *PullRequestsService) DeleteComment(ctx context.Context, workspace, slug string, prID, commentID int64) error {
	if err := s.client.delete(ctx, commentPath(workspace, slug, prID, commentID)); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// CommentCounts summarizes the resolvable comment threads
// on a pull request.
type CommentCounts struct {
	// Resolvable is the number of inline comment threads.
	Resolvable int

	// Resolved is how many of them are resolved.
	Resolved int
}

// CommentCounts tallies inline comment threads and their resolutions.
// It walks every comment page of the pull request.
func (s *PullRequestsService) CommentCounts(ctx context.Context, workspace, slug string, id int64) (*CommentCounts, error) {
	var counts CommentCounts
	for comment, err := range s.AllComments(ctx, workspace, slug, id, nil) {
		if err != nil {
			return nil, fmt.Errorf("count comments: %w", err)
		}
		if !isResolvable(comment) {
			continue
		}
		counts.Resolvable++
		if comment.Resolution != nil {
			counts.Resolved++
		}
	}
	return &counts, nil
}

// isResolvable reports whether the comment starts a resolvable thread.
// Only live inline comments can be resolved on Bitbucket.
func isResolvable(c *Comment) bool {
	return !c.Deleted && c.Inline != nil
}

func commentsPath(workspace, slug string, prID int64) string {
	return prPath(workspace, slug, prID) + "/comments"
}

func commentPath(workspace, slug string, prID, commentID int64) string {
	return fmt.Sprintf("%s/comments/%d", prPath(workspace, slug, prID), commentID)
}
