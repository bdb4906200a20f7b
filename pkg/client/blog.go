package client

import (
	"context"
	"net/url"
	"strconv"
)

type BlogPost struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"cover_image"`
	Tags        []string `json:"tags"`
	Views       int      `json:"views"`
	Likes       int      `json:"likes"`
	PublishedAt string   `json:"published_at"`
}

func (c *Client) BlogPosts(ctx context.Context, page int) ([]BlogPost, error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	var out []BlogPost
	if err := c.doJSON(ctx, "GET", "/blog/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlogPost fetches by id; a missing post surfaces as ErrNotFound so views can
// degrade to an explicit not-found state.
func (c *Client) BlogPost(ctx context.Context, id string) (BlogPost, error) {
	var p BlogPost
	if err := c.doJSON(ctx, "GET", "/blog/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return BlogPost{}, err
	}
	return p, nil
}

func (c *Client) BlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	var p BlogPost
	if err := c.doJSON(ctx, "GET", "/blog/slug/"+url.PathEscape(slug), nil, nil, &p); err != nil {
		return BlogPost{}, err
	}
	return p, nil
}

func (c *Client) LikeBlogPost(ctx context.Context, id string) (int, error) {
	var out struct {
		Likes int `json:"likes"`
	}
	if err := c.doJSON(ctx, "POST", "/blog/"+url.PathEscape(id)+"/like", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Likes, nil
}

type Notification struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.doJSON(ctx, "GET", "/notifications/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, "POST", "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}
