package domain

import "time"

// Post categories recognized by the backend.
const (
	CategoryPregnancy      = "pregnancy"
	CategoryChildbirth     = "childbirth"
	CategoryPostpartum     = "postpartum"
	CategoryBabyMilestones = "baby_milestones"
	CategoryGeneral        = "general"
)

// Post is a community feed entry.
type Post struct {
	PostID           string    `json:"post_id"`
	AuthorID         string    `json:"author_id"`
	AuthorName       string    `json:"author_name"`
	AuthorPicture    string    `json:"author_picture,omitempty"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Images           []string  `json:"images"`
	Category         string    `json:"category"`
	Tags             []string  `json:"tags"`
	LikesCount       int       `json:"likes_count"`
	CommentsCount    int       `json:"comments_count"`
	IsModerated      bool      `json:"is_moderated"`
	ModerationStatus string    `json:"moderation_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Comment is attached to a post.
type Comment struct {
	CommentID     string    `json:"comment_id"`
	PostID        string    `json:"post_id"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	AuthorPicture string    `json:"author_picture,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

// Photo is a single image extracted from a post for gallery views.
type Photo struct {
	PhotoID    string    `json:"photo_id"`
	PostID     string    `json:"post_id"`
	PostTitle  string    `json:"post_title"`
	AuthorName string    `json:"author_name,omitempty"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}
