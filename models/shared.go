package models

// SocialHandle is one social media presence, kept as a slice so output order is stable.
type SocialHandle struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

// ContactInfo holds the business contact details.
type ContactInfo struct {
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Address     string         `json:"address"`
	Website     string         `json:"website"`
	Hours       string         `json:"hours"`
	SocialMedia []SocialHandle `json:"social_media,omitempty"`
}
