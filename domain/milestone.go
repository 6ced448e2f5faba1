package domain

import "time"

// Milestone tracks a child's developmental progress.
type Milestone struct {
	MilestoneID   string     `json:"milestone_id"`
	UserID        string     `json:"user_id"`
	ChildName     string     `json:"child_name"`
	MilestoneType string     `json:"milestone_type"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	AgeMonths     int        `json:"age_months"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Resource is an article, video, or guide in the resource library.
type Resource struct {
	ResourceID   string    `json:"resource_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ResourceType string    `json:"resource_type"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	Tags         []string  `json:"tags"`
	IsPremium    bool      `json:"is_premium"`
	CreatedAt    time.Time `json:"created_at"`
}
