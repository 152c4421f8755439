package entity

import "time"

// Donation is a recorded contribution. ID is the human-facing receipt
// identifier (DN0001, DN0002, ...), distinct from any payment reference.
type Donation struct {
	ID        string    `json:"id"`
	Donor     string    `json:"donor"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Date      string    `json:"date"` // YYYY-MM-DD, kept as text for UI compatibility
	Status    string    `json:"status"`
	Receipt   string    `json:"receipt"`
	UserID    string    `json:"userId,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DonationFilter narrows listing queries. Zero values mean "no constraint".
type DonationFilter struct {
	Type       string
	Status     string
	PublicOnly bool
	MinAmount  *float64
	MaxAmount  *float64
	UserID     string
	Email      string
}
