package client

import "context"

// Admin dashboard summaries. All four require an admin bearer token.

type OrderStats struct {
	TotalOrders  int            `json:"total_orders"`
	TotalRevenue float64        `json:"total_revenue"`
	ByStatus     map[string]int `json:"by_status"`
}

type UserStats struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
	Admins      int `json:"admins"`
}

type BlogStats struct {
	TotalPosts int `json:"total_posts"`
	TotalViews int `json:"total_views"`
	TotalLikes int `json:"total_likes"`
}

type NotificationStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

func (c *Client) OrderStats(ctx context.Context) (OrderStats, error) {
	var s OrderStats
	err := c.doJSON(ctx, "GET", "/orders/stats/summary", nil, nil, &s)
	return s, err
}

func (c *Client) UserStats(ctx context.Context) (UserStats, error) {
	var s UserStats
	err := c.doJSON(ctx, "GET", "/users/stats/summary", nil, nil, &s)
	return s, err
}

func (c *Client) BlogStats(ctx context.Context) (BlogStats, error) {
	var s BlogStats
	err := c.doJSON(ctx, "GET", "/blog/stats/summary", nil, nil, &s)
	return s, err
}

func (c *Client) NotificationStats(ctx context.Context) (NotificationStats, error) {
	var s NotificationStats
	err := c.doJSON(ctx, "GET", "/notifications/stats/summary", nil, nil, &s)
	return s, err
}
