package domain

import "time"

// User represents a member profile as served by the Blossom API.
type User struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Address        string    `json:"address,omitempty"`
	Country        string    `json:"country,omitempty"`
	Picture        string    `json:"picture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	PregnancyStage string    `json:"pregnancy_stage,omitempty"`
	DueDate        string    `json:"due_date,omitempty"`
	ChildrenCount  int       `json:"children_count"`
	Interests      []string  `json:"interests"`
	IsPremium      bool      `json:"is_premium"`
	CreatedAt      time.Time `json:"created_at"`
}

// DisplayName prefers the composed first/last name over the account name.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Name
}
