package gobucket

import (
	"context"
	"fmt"
)

// UsersService accesses user profiles.
type UsersService struct {
	client *Client
}

// CurrentUser fetches the profile of the authenticated user.
func (s *UsersService) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/user", &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

// Get fetches a user by UUID or account ID.
func (s *UsersService) Get(ctx context.Context, selector string) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/users/"+escape(selector), &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Emails fetches the email addresses of the authenticated user.
func (s *UsersService) Emails(ctx context.Context) ([]*Email, error) {
	emails, err := listPage[Email](ctx, s.client, "/user/emails")
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	return emails, nil
}
