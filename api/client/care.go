package client

import (
	"context"
	"net/url"

	"github.com/blossomapp/client/api/transport"
	"github.com/blossomapp/client/domain"
)

// CreateMilestone records a new milestone to track.
func (c *Client) CreateMilestone(ctx context.Context, req transport.MilestoneCreateRequest) (*domain.Milestone, error) {
	var out domain.Milestone
	if err := c.post(ctx, "/milestones", callOpts{}, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Milestones lists the caller's milestones ordered by age.
func (c *Client) Milestones(ctx context.Context) ([]domain.Milestone, error) {
	var out []domain.Milestone
	if err := c.get(ctx, "/milestones", callOpts{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteMilestone marks a milestone done, with optional notes.
func (c *Client) CompleteMilestone(ctx context.Context, milestoneID, notes string) (*domain.Milestone, error) {
	query := url.Values{}
	if notes != "" {
		query.Set("notes", notes)
	}
	var out domain.Milestone
	if err := c.put(ctx, "/milestones/"+milestoneID+"/complete", callOpts{query: query}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resources lists library entries; premium entries are filtered server-side.
func (c *Client) Resources(ctx context.Context, category string) ([]domain.Resource, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var out []domain.Resource
	if err := c.get(ctx, "/resources", callOpts{query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubscribePremium activates the premium subscription.
func (c *Client) SubscribePremium(ctx context.Context) (*transport.PremiumStatusResponse, error) {
	var out transport.PremiumStatusResponse
	if err := c.post(ctx, "/premium/subscribe", callOpts{}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PremiumStatus reports whether the caller has an active subscription.
func (c *Client) PremiumStatus(ctx context.Context) (bool, error) {
	var out transport.PremiumStatusResponse
	if err := c.get(ctx, "/premium/status", callOpts{}, &out); err != nil {
		return false, err
	}
	return out.IsPremium, nil
}

// RegisterPushToken registers a device token for push delivery.
func (c *Client) RegisterPushToken(ctx context.Context, token, platform string) error {
	req := transport.PushTokenRequest{Token: token, Platform: platform}
	return c.post(ctx, "/notifications/register-token", callOpts{}, req, nil)
}

// NotificationPreferences fetches the caller's notification settings.
func (c *Client) NotificationPreferences(ctx context.Context) (*domain.NotificationPreferences, error) {
	var out domain.NotificationPreferences
	if err := c.get(ctx, "/notifications/preferences", callOpts{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNotificationPreferences applies partial preference updates.
func (c *Client) UpdateNotificationPreferences(ctx context.Context, prefs map[string]bool) error {
	return c.put(ctx, "/notifications/preferences", callOpts{}, prefs, nil)
}
