package domain

import "time"

// Message is a single direct message.
type Message struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	SenderPicture  string    `json:"sender_picture,omitempty"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Conversation groups messages between two members.
type Conversation struct {
	ConversationID      string            `json:"conversation_id"`
	Participants        []string          `json:"participants"`
	ParticipantNames    map[string]string `json:"participant_names"`
	ParticipantPictures map[string]string `json:"participant_pictures"`
	LastMessage         string            `json:"last_message,omitempty"`
	LastMessageAt       *time.Time        `json:"last_message_at,omitempty"`
	UnreadCount         int               `json:"unread_count"`
	CreatedAt           time.Time         `json:"created_at"`
}

// NotificationPreferences control which push categories a member receives.
type NotificationPreferences struct {
	UserID               string `json:"user_id"`
	NewPosts             bool   `json:"new_posts"`
	MilestoneReminders   bool   `json:"milestone_reminders"`
	GroupUpdates         bool   `json:"group_updates"`
	PremiumNotifications bool   `json:"premium_notifications"`
}
