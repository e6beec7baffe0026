package api

import (
	"context"
	"net/http"
)

// ListInvitations retrieves the caller's sent invitations
func (c *Client) ListInvitations(ctx context.Context) ([]Invitation, error) {
	var invitations []Invitation
	if err := c.do(ctx, http.MethodGet, "/invitations", nil, &invitations); err != nil {
		return nil, err
	}

	return invitations, nil
}

// CreateInvitation sends an invitation and returns the created record,
// including the invite link the recipient receives.
func (c *Client) CreateInvitation(ctx context.Context, input CreateInvitationInput) (*Invitation, error) {
	var invitation Invitation
	if err := c.do(ctx, http.MethodPost, "/invitations", input, &invitation); err != nil {
		return nil, err
	}

	return &invitation, nil
}
