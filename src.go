package gobucket

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// SrcService accesses repository source trees and file contents.
type SrcService struct {
	client *Client
}

// List fetches a single page of entries in a directory of the source tree.
// rev is a branch, tag, or commit; path is the directory ("" for the root).
func (s *SrcService) List(ctx context.Context, workspace, slug, rev, path string, opts *ListOptions) ([]*SrcEntry, error) {
	p, err := addOptions(srcPath(workspace, slug, rev, path), opts)
	if err != nil {
		return nil, err
	}

	entries, err := listPage[SrcEntry](ctx, s.client, p)
	if err != nil {
		return nil, fmt.Errorf("list source entries: %w", err)
	}
	return entries, nil
}

// All iterates over every entry in a directory of the source tree.
func (s *SrcService) All(ctx context.Context, workspace, slug, rev, path string, opts *ListOptions) iter.Seq2[*SrcEntry, error] {
	p, err := addOptions(srcPath(workspace, slug, rev, path), opts)
	if err != nil {
		return yieldErr[SrcEntry](err)
	}
	return allPages[SrcEntry](ctx, s.client, p)
}

// Raw fetches the raw contents of a file at rev.
func (s *SrcService) Raw(ctx context.Context, workspace, slug, rev, path string) (string, error) {
	var content string
	if err := s.client.get(ctx, srcPath(workspace, slug, rev, path), &content); err != nil {
		return "", fmt.Errorf("get file contents: %w", err)
	}
	return content, nil
}

// srcPath builds the /src path, escaping each path segment
// while preserving the separators.
func srcPath(workspace, slug, rev, path string) string {
	p := fmt.Sprintf("%s/src/%s", repoPath(workspace, slug), escape(rev))
	for segment := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		p += "/" + escape(segment)
	}
	return p
}
