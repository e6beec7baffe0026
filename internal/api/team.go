package api

import (
	"context"
	"net/http"
)

// TeamMembers retrieves every member visible to the caller
func (c *Client) TeamMembers(ctx context.Context) ([]TeamMember, error) {
	var members []TeamMember
	if err := c.do(ctx, http.MethodGet, "/team/members", nil, &members); err != nil {
		return nil, err
	}

	return members, nil
}

// MyTeam retrieves the caller's direct team
func (c *Client) MyTeam(ctx context.Context) ([]TeamMember, error) {
	var members []TeamMember
	if err := c.do(ctx, http.MethodGet, "/team/my-team", nil, &members); err != nil {
		return nil, err
	}

	return members, nil
}

// TeamHierarchy retrieves the nested reporting structure
func (c *Client) TeamHierarchy(ctx context.Context) ([]HierarchyNode, error) {
	var nodes []HierarchyNode
	if err := c.do(ctx, http.MethodGet, "/team/hierarchy", nil, &nodes); err != nil {
		return nil, err
	}

	return nodes, nil
}

// TeamStats retrieves aggregate team statistics
func (c *Client) TeamStats(ctx context.Context) (*TeamStats, error) {
	var stats TeamStats
	if err := c.do(ctx, http.MethodGet, "/team/stats", nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// TeamLeader retrieves the caller's team leader, nil when there is none
func (c *Client) TeamLeader(ctx context.Context) (*TeamMember, error) {
	var leader *TeamMember
	if err := c.do(ctx, http.MethodGet, "/team/leader", nil, &leader); err != nil {
		return nil, err
	}

	return leader, nil
}
