package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
)

// Forums lists all discussion forums.
func (c *Client) Forums(ctx context.Context) ([]domain.Forum, error) {
	var out []domain.Forum
	if err := c.get(ctx, "/forums", callOpts{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Forum fetches a single forum by ID.
func (c *Client) Forum(ctx context.Context, forumID string) (*domain.Forum, error) {
	var out domain.Forum
	if err := c.get(ctx, "/forums/"+forumID, callOpts{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SupportGroups lists the available peer-support groups.
func (c *Client) SupportGroups(ctx context.Context) ([]domain.SupportGroup, error) {
	var out []domain.SupportGroup
	if err := c.get(ctx, "/support-groups", callOpts{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JoinSupportGroup adds the caller to a group's member list.
func (c *Client) JoinSupportGroup(ctx context.Context, groupID string) error {
	return c.post(ctx, "/support-groups/"+groupID+"/join", callOpts{}, nil, nil)
}

// SearchUsers queries the member directory.
func (c *Client) SearchUsers(ctx context.Context, q transport.UserSearchQuery) ([]domain.User, error) {
	query := url.Values{}
	if q.Query != "" {
		query.Set("q", q.Query)
	}
	if q.Interests != "" {
		query.Set("interests", q.Interests)
	}
	if q.PregnancyStage != "" {
		query.Set("pregnancy_stage", q.PregnancyStage)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var out []domain.User
	if err := c.get(ctx, "/users/search", callOpts{query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage starts or continues a direct conversation.
func (c *Client) SendMessage(ctx context.Context, req transport.MessageSendRequest) (*domain.Message, error) {
	var out domain.Message
	if err := c.post(ctx, "/messages", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Conversations lists the caller's conversations, most recent first.
func (c *Client) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	var out []domain.Conversation
	if err := c.get(ctx, "/conversations", callOpts{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Messages returns a conversation's messages and marks them read.
func (c *Client) Messages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out []domain.Message
	if err := c.get(ctx, "/conversations/"+conversationID+"/messages", callOpts{query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
