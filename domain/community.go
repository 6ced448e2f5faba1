package domain

import "time"

// Forum is a topical discussion board.
type Forum struct {
	ForumID      string    `json:"forum_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	MembersCount int       `json:"members_count"`
	PostsCount   int       `json:"posts_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupportGroup is a themed peer-support circle.
type SupportGroup struct {
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`
	Members     []string  `json:"members"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsMember reports whether the given user belongs to the group.
func (g *SupportGroup) IsMember(userID string) bool {
	if g == nil {
		return false
	}
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
