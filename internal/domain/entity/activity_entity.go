package entity

import "time"

// Activity is a feed item, optionally carrying uploaded media.
type Activity struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MediaURL    string     `json:"mediaUrl,omitempty"`
	MediaType   string     `json:"mediaType,omitempty"` // "image" or "video"
	IsPublic    bool       `json:"isPublic"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	EventDate   *time.Time `json:"eventDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
