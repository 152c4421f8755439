package entity

import "time"

// Announcement is a text-only feed item published by admins.
type Announcement struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsPublic  bool       `json:"isPublic"`
	CreatedBy string     `json:"createdBy,omitempty"`
	EventDate *time.Time `json:"eventDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
