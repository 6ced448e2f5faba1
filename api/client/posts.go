package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
)

// CreatePost submits a new post. The backend moderates it before insertion.
func (c *Client) CreatePost(ctx context.Context, req transport.PostCreateRequest) (*domain.Post, error) {
	var out domain.Post
	if err := c.post(ctx, "/posts", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts returns the feed, optionally narrowed by category and paged.
func (c *Client) Posts(ctx context.Context, q transport.PostQuery) ([]domain.Post, error) {
	query := url.Values{}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		query.Set("skip", strconv.Itoa(q.Skip))
	}

	var out []domain.Post
	if err := c.get(ctx, "/posts", callOpts{query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post fetches a single post by ID.
func (c *Client) Post(ctx context.Context, postID string) (*domain.Post, error) {
	var out domain.Post
	if err := c.get(ctx, "/posts/"+postID, callOpts{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikePost toggles the caller's like; the response reports the new state.
func (c *Client) LikePost(ctx context.Context, postID string) (bool, error) {
	var out transport.LikeResponse
	if err := c.post(ctx, "/posts/"+postID+"/like", callOpts{}, nil, &out); err != nil {
		return false, err
	}
	return out.Liked, nil
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(ctx context.Context, req transport.CommentCreateRequest) (*domain.Comment, error) {
	var out domain.Comment
	if err := c.post(ctx, "/comments", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Comments lists the comments under a post, oldest first.
func (c *Client) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	var out []domain.Comment
	if err := c.get(ctx, "/posts/"+postID+"/comments", callOpts{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyPhotos returns every image attached to the caller's posts.
func (c *Client) MyPhotos(ctx context.Context) ([]domain.Photo, error) {
	var out []domain.Photo
	if err := c.get(ctx, "/gallery/my-photos", callOpts{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CommunityPhotos returns recent images from approved community posts.
func (c *Client) CommunityPhotos(ctx context.Context, limit int) ([]domain.Photo, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out []domain.Photo
	if err := c.get(ctx, "/gallery/community", callOpts{query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
