package transport

// RegisterRequest creates a new account with email/password credentials.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Country     string `json:"country,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest carries only the fields the backend allows updating.
type ProfileUpdateRequest struct {
	Name           string   `json:"name,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Picture        string   `json:"picture,omitempty"`
	PregnancyStage string   `json:"pregnancy_stage,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	ChildrenCount  *int     `json:"children_count,omitempty"`
	Interests      []string `json:"interests,omitempty"`
}

type PostCreateRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type CommentCreateRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type MilestoneCreateRequest struct {
	ChildName     string `json:"child_name"`
	MilestoneType string `json:"milestone_type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	AgeMonths     int    `json:"age_months"`
}

type PushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type MessageSendRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

// PostQuery narrows the feed listing.
type PostQuery struct {
	Category string
	Limit    int
	Skip     int
}

// UserSearchQuery filters the member directory.
type UserSearchQuery struct {
	Query          string
	Interests      string
	PregnancyStage string
	Limit          int
}
